package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Exporter writes a header row plus data rows to some tabular format.
type Exporter interface {
	Export(headers []string, rows [][]string) error
}

// CSVExporter writes the dataset to a CSV file.
type CSVExporter struct {
	FileName string
}

// NewCSVExporter creates a CSVExporter targeting fileName.
func NewCSVExporter(fileName string) *CSVExporter {
	return &CSVExporter{FileName: fileName}
}

func (e *CSVExporter) Export(headers []string, rows [][]string) error {
	file, err := os.Create(e.FileName)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}
