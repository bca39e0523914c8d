package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// WriteDistributions writes the document-topic weight table as CSV: a
// header row (Document, Topic0..Topic{k-1}) and one row per document with
// weights at six decimal places. A nil W (degenerate corpus) produces
// numDocs all-zero rows.
func WriteDistributions(out io.Writer, w *mat.Dense, numDocs, numTopics int) error {
	writer := csv.NewWriter(out)

	header := make([]string, 0, numTopics+1)
	header = append(header, "Document")
	for i := 0; i < numTopics; i++ {
		header = append(header, fmt.Sprintf("Topic%d", i))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for docIdx := 0; docIdx < numDocs; docIdx++ {
		record := make([]string, 0, numTopics+1)
		record = append(record, strconv.Itoa(docIdx))
		for topic := 0; topic < numTopics; topic++ {
			weight := 0.0
			if w != nil {
				weight = w.At(docIdx, topic)
			}
			record = append(record, fmt.Sprintf("%.6f", weight))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", docIdx, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush distributions: %w", err)
	}
	return nil
}

// SaveDistributions writes the distribution table to a file
func SaveDistributions(path string, w *mat.Dense, numDocs, numTopics int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create distributions file: %w", err)
	}
	defer file.Close()
	return WriteDistributions(file, w, numDocs, numTopics)
}
