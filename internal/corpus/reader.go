package corpus

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Reader walks a directory tree and turns text files into documents
type Reader struct {
	tokenizer *Tokenizer
}

// NewReader creates a directory reader using the given tokenizer
func NewReader(tokenizer *Tokenizer) *Reader {
	return &Reader{tokenizer: tokenizer}
}

// ReadDir recursively reads all .txt and .html files under root, assigning
// document indexes in walk order
func (r *Reader) ReadDir(root string) ([]Document, error) {
	var documents []Document

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var text string
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt":
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			text = string(data)
		case ".html", ".htm":
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			text, err = ExtractText(file)
			file.Close()
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
		default:
			return nil
		}

		documents = append(documents, Document{
			Index:  len(documents),
			Path:   path,
			Tokens: r.tokenizer.Tokenize(text),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// ExtractText pulls the visible text out of an HTML document, skipping
// script and style blocks
func ExtractText(body io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(body)
	var textBuilder strings.Builder
	inScript := false
	inStyle := false

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.Join(strings.Fields(textBuilder.String()), " "), nil
			}
			return "", tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = true
			case "style":
				inStyle = true
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "script":
				inScript = false
			case "style":
				inStyle = false
			}

		case html.TextToken:
			if !inScript && !inStyle {
				text := strings.TrimSpace(tokenizer.Token().Data)
				if text != "" {
					textBuilder.WriteString(text + " ")
				}
			}
		}
	}
}
