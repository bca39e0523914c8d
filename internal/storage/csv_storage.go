package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/topic-engine/backend/internal/corpus"
)

// ErrMalformedRecord indicates a corpus row that cannot be decoded.
// Malformed input is a hard failure, never silently coerced.
var ErrMalformedRecord = errors.New("malformed corpus record")

// CorpusStorage defines the interface for persisting tokenized documents
type CorpusStorage interface {
	Save(documents []corpus.Document) error
	Load() ([]corpus.Document, error)
}

// CSVStorage implements CorpusStorage using two CSV files: a token file
// (index, JSON-encoded token list) and a file index (index, source path)
type CSVStorage struct {
	tokensPath string
	filesPath  string
	mu         sync.Mutex
}

// NewCSVStorage creates a CSV-backed corpus storage
func NewCSVStorage(tokensPath, filesPath string) *CSVStorage {
	return &CSVStorage{
		tokensPath: tokensPath,
		filesPath:  filesPath,
	}
}

// Save writes the tokenized corpus, replacing any previous files
func (s *CSVStorage) Save(documents []corpus.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokensFile, err := os.Create(s.tokensPath)
	if err != nil {
		return fmt.Errorf("failed to create tokens file: %w", err)
	}
	defer tokensFile.Close()

	filesFile, err := os.Create(s.filesPath)
	if err != nil {
		return fmt.Errorf("failed to create files index: %w", err)
	}
	defer filesFile.Close()

	tokensWriter := csv.NewWriter(tokensFile)
	filesWriter := csv.NewWriter(filesFile)

	if err := tokensWriter.Write([]string{"index", "tokens"}); err != nil {
		return fmt.Errorf("failed to write tokens header: %w", err)
	}
	if err := filesWriter.Write([]string{"index", "file_path"}); err != nil {
		return fmt.Errorf("failed to write files header: %w", err)
	}

	for _, doc := range documents {
		encoded, err := json.Marshal(doc.Tokens)
		if err != nil {
			return fmt.Errorf("failed to encode tokens for document %d: %w", doc.Index, err)
		}
		idx := strconv.Itoa(doc.Index)
		if err := tokensWriter.Write([]string{idx, string(encoded)}); err != nil {
			return fmt.Errorf("failed to write tokens row: %w", err)
		}
		if err := filesWriter.Write([]string{idx, doc.Path}); err != nil {
			return fmt.Errorf("failed to write files row: %w", err)
		}
	}

	tokensWriter.Flush()
	if err := tokensWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush tokens file: %w", err)
	}
	filesWriter.Flush()
	if err := filesWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush files index: %w", err)
	}
	return nil
}

// Load reads the tokenized corpus back, rejecting malformed rows
func (s *CSVStorage) Load() ([]corpus.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.tokensPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tokens file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	paths, err := s.loadPaths()
	if err != nil {
		return nil, err
	}

	// Skip header row
	documents := make([]corpus.Document, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedRecord, len(record))
		}
		index, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid index %q", ErrMalformedRecord, record[0])
		}
		var tokens []string
		if err := json.Unmarshal([]byte(record[1]), &tokens); err != nil {
			return nil, fmt.Errorf("%w: invalid token payload for document %d: %v", ErrMalformedRecord, index, err)
		}
		documents = append(documents, corpus.Document{
			Index:  index,
			Path:   paths[index],
			Tokens: tokens,
		})
	}
	return documents, nil
}

// loadPaths reads the file index; a missing index file is not fatal
func (s *CSVStorage) loadPaths() (map[int]string, error) {
	paths := make(map[int]string)

	file, err := os.Open(s.filesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return paths, nil
		}
		return nil, fmt.Errorf("failed to open files index: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read files index: %w", err)
	}
	for i, record := range records {
		if i == 0 || len(record) != 2 {
			continue
		}
		if index, err := strconv.Atoi(record[0]); err == nil {
			paths[index] = record[1]
		}
	}
	return paths, nil
}
