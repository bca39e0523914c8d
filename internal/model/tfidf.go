package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Encode builds the dense TF-IDF document-term matrix for a corpus.
//
// Term frequency is normalized by the count of vocabulary-matched tokens in
// the document, so a document whose tokens were all filtered out stays an
// all-zero row. IDF uses the smoothed form 1 + ln((N+1)/(df+1)), which is
// strictly positive for every retained term.
//
// Returns nil when the corpus or the vocabulary is empty; gonum cannot
// represent zero-dimension matrices.
func Encode(documents [][]string, vocab *Vocabulary) *mat.Dense {
	numDocs := len(documents)
	vocabSize := vocab.Size()
	if numDocs == 0 || vocabSize == 0 {
		return nil
	}

	tfidf := mat.NewDense(numDocs, vocabSize, nil)

	// Term frequency over vocabulary-matched tokens only
	for docIdx, doc := range documents {
		matched := 0
		for _, token := range doc {
			if _, ok := vocab.Index(token); ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		weight := 1.0 / float64(matched)
		for _, token := range doc {
			if tokenIdx, ok := vocab.Index(token); ok {
				tfidf.Set(docIdx, tokenIdx, tfidf.At(docIdx, tokenIdx)+weight)
			}
		}
	}

	// Smoothed IDF per retained term
	idf := make([]float64, vocabSize)
	docFreq := make([]int, vocabSize)
	for _, doc := range documents {
		seen := make(map[int]struct{}, len(doc))
		for _, token := range doc {
			if tokenIdx, ok := vocab.Index(token); ok {
				seen[tokenIdx] = struct{}{}
			}
		}
		for tokenIdx := range seen {
			docFreq[tokenIdx]++
		}
	}
	for i := range idf {
		idf[i] = 1.0 + math.Log((float64(numDocs)+1.0)/(float64(docFreq[i])+1.0))
	}

	// Weight rows by IDF, clamping at zero. TF and IDF are both provably
	// non-negative here; the clamp guards the invariant should the IDF
	// formula ever change.
	for docIdx := 0; docIdx < numDocs; docIdx++ {
		for tokenIdx := 0; tokenIdx < vocabSize; tokenIdx++ {
			tfidf.Set(docIdx, tokenIdx, math.Max(tfidf.At(docIdx, tokenIdx)*idf[tokenIdx], 0))
		}
	}

	return tfidf
}
