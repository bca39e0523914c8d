package model

import "sort"

// Vocabulary maps retained tokens to dense matrix column indexes
type Vocabulary struct {
	index map[string]int
	terms []string
}

// BuildVocabulary counts, for each distinct token, the number of documents
// containing it at least once, and retains tokens whose document frequency
// is >= minDocFreq. Index assignment is deterministic: terms are sorted
// before indexes are handed out.
func BuildVocabulary(documents [][]string, minDocFreq int) *Vocabulary {
	docCounts := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{}, len(doc))
		for _, token := range doc {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docCounts[token]++
		}
	}

	var terms []string
	for token, count := range docCounts {
		if count >= minDocFreq {
			terms = append(terms, token)
		}
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return &Vocabulary{index: index, terms: terms}
}

// Size returns the number of retained terms
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Index returns the column index for a token, if retained
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Term returns the token at the given column index
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Terms returns all retained tokens in index order
func (v *Vocabulary) Terms() []string {
	return v.terms
}
