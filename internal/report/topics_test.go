package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/topic-engine/backend/internal/model"
	"github.com/topic-engine/backend/internal/report"
)

// fourTermVocab builds a vocabulary whose sorted terms are
// apple, banana, cherry, date (indexes 0..3)
func fourTermVocab(t *testing.T) *model.Vocabulary {
	vocab := model.BuildVocabulary([][]string{{"apple", "banana", "cherry", "date"}}, 1)
	require.Equal(t, 4, vocab.Size())
	return vocab
}

func TestTopicsWeightThreshold(t *testing.T) {
	vocab := fourTermVocab(t)
	h := mat.NewDense(1, 4, []float64{0.5, 0.3, 0.0005, 0.0})

	topics := report.Topics(h, vocab, 1, 10, 0.001)
	require.Len(t, topics, 1)

	// 0.0005 and 0.0 fall at or below the threshold
	assert.Equal(t, "Topic 0: apple banana", topics[0])
}

func TestTopicsSortedByWeight(t *testing.T) {
	vocab := fourTermVocab(t)
	h := mat.NewDense(1, 4, []float64{0.2, 0.9, 0.5, 0.7})

	topics := report.Topics(h, vocab, 1, 10, 0.001)
	assert.Equal(t, "Topic 0: banana date cherry apple", topics[0])
}

func TestTopicsTruncatesToTopN(t *testing.T) {
	vocab := fourTermVocab(t)
	h := mat.NewDense(1, 4, []float64{0.2, 0.9, 0.5, 0.7})

	topics := report.Topics(h, vocab, 1, 2, 0.001)
	assert.Equal(t, "Topic 0: banana date", topics[0])
}

func TestTopicsMultipleRows(t *testing.T) {
	vocab := fourTermVocab(t)
	h := mat.NewDense(2, 4, []float64{
		0.9, 0.0, 0.0, 0.0,
		0.0, 0.0, 0.8, 0.6,
	})

	topics := report.Topics(h, vocab, 2, 10, 0.001)
	require.Len(t, topics, 2)
	assert.Equal(t, "Topic 0: apple", topics[0])
	assert.Equal(t, "Topic 1: cherry date", topics[1])
}

func TestTopicsNilFactors(t *testing.T) {
	topics := report.Topics(nil, nil, 3, 10, 0.001)
	require.Len(t, topics, 3)
	assert.Equal(t, "Topic 0:", topics[0])
	assert.Equal(t, "Topic 2:", topics[2])
}

func TestTopTermsStableTieBreak(t *testing.T) {
	vocab := fourTermVocab(t)
	h := mat.NewDense(1, 4, []float64{0.5, 0.5, 0.5, 0.5})

	terms := report.TopTerms(h, vocab, 0, 10, 0.001)
	require.Len(t, terms, 4)
	// Equal weights keep vocabulary-index order
	assert.Equal(t, "apple", terms[0].Term)
	assert.Equal(t, "date", terms[3].Term)
}
