package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Writer appends per-step measurements to a metrics CSV file
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// NewWriter creates the metrics file and writes the header row
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics file: %w", err)
	}

	w := &Writer{file: file, csv: csv.NewWriter(file)}
	header := []string{"Iteration", "Dataset", "Step", "Time (s)", "Memory (MB)", "CPU Usage (%)", "Topics"}
	if err := w.csv.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write metrics header: %w", err)
	}
	w.csv.Flush()
	return w, nil
}

// WriteStep records one measured step; topics is "N/A" for non-modeling steps
func (w *Writer) WriteStep(iteration, dataset int, result StepResult, topics string) error {
	record := []string{
		strconv.Itoa(iteration),
		strconv.Itoa(dataset),
		result.Step,
		fmt.Sprintf("%.6f", result.Duration.Seconds()),
		fmt.Sprintf("%.2f", result.MemoryMB),
		fmt.Sprintf("%.1f", result.CPUPercent),
		topics,
	}
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write metrics row: %w", err)
	}
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the metrics file
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
