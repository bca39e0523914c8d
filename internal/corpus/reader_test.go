package corpus_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topic-engine/backend/internal/corpus"
)

func TestReadDir(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile(t, tmpDir, "a.txt", "cats dogs")
	writeFile(t, tmpDir, "b.html", "<html><body><p>fish food</p><script>var ignored;</script></body></html>")
	writeFile(t, tmpDir, "c.md", "skipped entirely")

	reader := corpus.NewReader(corpus.NewTokenizer(nil, 1))
	documents, err := reader.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, documents, 2)

	assert.Equal(t, 0, documents[0].Index)
	assert.Equal(t, []string{"cat", "dog"}, documents[0].Tokens)
	assert.True(t, strings.HasSuffix(documents[0].Path, "a.txt"))

	assert.Equal(t, 1, documents[1].Index)
	assert.Equal(t, []string{"fish", "food"}, documents[1].Tokens)
}

func TestReadDirNested(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0755))

	writeFile(t, tmpDir, "top.txt", "cat")
	writeFile(t, filepath.Join(tmpDir, "sub"), "deep.txt", "dog")

	reader := corpus.NewReader(corpus.NewTokenizer(nil, 1))
	documents, err := reader.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, documents, 2)
}

func TestReadDirMissing(t *testing.T) {
	reader := corpus.NewReader(corpus.NewTokenizer(nil, 1))
	_, err := reader.ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestExtractTextSkipsScriptAndStyle(t *testing.T) {
	input := `<html><head><style>body { color: red; }</style></head>` +
		`<body><h1>Title</h1><script>alert("hidden");</script><p>visible text</p></body></html>`

	text, err := corpus.ExtractText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Title visible text", text)
}

func TestLoadStopwords(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "stopwords.txt")
	require.NoError(t, os.WriteFile(path, []byte("the\nand\n\n  of  \n"), 0644))

	stopwords, err := corpus.LoadStopwords(path)
	require.NoError(t, err)
	assert.Len(t, stopwords, 3)
	_, ok := stopwords["of"]
	assert.True(t, ok)
}

func TestLoadStopwordsMissingFile(t *testing.T) {
	_, err := corpus.LoadStopwords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
