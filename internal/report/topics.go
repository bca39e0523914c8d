package report

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/topic-engine/backend/internal/model"
)

// TermWeight pairs a vocabulary term with its topic weight
type TermWeight struct {
	Term   string
	Weight float64
}

// TopTerms returns, for topic row i of H, its terms sorted by descending
// weight, truncated to topN and filtered to weights above minWeight.
// Equal weights keep vocabulary-index order (stable sort).
func TopTerms(h *mat.Dense, vocab *model.Vocabulary, topic, topN int, minWeight float64) []TermWeight {
	_, cols := h.Dims()
	weights := make([]TermWeight, 0, cols)
	for i := 0; i < cols; i++ {
		weights = append(weights, TermWeight{Term: vocab.Term(i), Weight: h.At(topic, i)})
	}
	sort.SliceStable(weights, func(a, b int) bool {
		return weights[a].Weight > weights[b].Weight
	})

	if len(weights) > topN {
		weights = weights[:topN]
	}
	result := make([]TermWeight, 0, len(weights))
	for _, tw := range weights {
		if tw.Weight > minWeight {
			result = append(result, tw)
		}
	}
	return result
}

// Topics renders one label per requested topic: "Topic i: " followed by the
// space-joined top terms, trailing whitespace trimmed. A nil H (empty
// vocabulary) yields bare labels.
func Topics(h *mat.Dense, vocab *model.Vocabulary, numTopics, topN int, minWeight float64) []string {
	labels := make([]string, 0, numTopics)
	for topic := 0; topic < numTopics; topic++ {
		var builder strings.Builder
		builder.WriteString(fmt.Sprintf("Topic %d: ", topic))
		if h != nil {
			for _, tw := range TopTerms(h, vocab, topic, topN, minWeight) {
				builder.WriteString(tw.Term + " ")
			}
		}
		labels = append(labels, strings.TrimRight(builder.String(), " "))
	}
	return labels
}
