package corpus

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Document represents a preprocessed text file
type Document struct {
	Index  int
	Path   string
	Tokens []string
}

// Tokenizer normalizes raw text into stemmed, stopword-filtered tokens
type Tokenizer struct {
	stopwords   map[string]struct{}
	minTokenLen int
}

// NewTokenizer creates a tokenizer with the given stopword set
func NewTokenizer(stopwords map[string]struct{}, minTokenLen int) *Tokenizer {
	if stopwords == nil {
		stopwords = make(map[string]struct{})
	}
	return &Tokenizer{
		stopwords:   stopwords,
		minTokenLen: minTokenLen,
	}
}

// Tokenize splits text into normalized tokens: non-letter characters act as
// separators, words are lowercased, stopwords dropped, survivors stemmed
func (t *Tokenizer) Tokenize(text string) []string {
	f := func(c rune) bool {
		return !unicode.IsLetter(c)
	}
	fields := strings.FieldsFunc(text, f)

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.ToLower(field)
		if len(word) < t.minTokenLen {
			continue
		}
		if _, skip := t.stopwords[word]; skip {
			continue
		}
		tokens = append(tokens, english.Stem(word, false))
	}
	return tokens
}
