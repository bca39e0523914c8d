package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadStopwords reads a newline-delimited stopword file into a set
func LoadStopwords(path string) (map[string]struct{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopwords file: %w", err)
	}
	defer file.Close()

	stopwords := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			stopwords[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopwords file: %w", err)
	}
	return stopwords, nil
}
