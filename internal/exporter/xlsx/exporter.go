package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const dataSheet = "Data"

// XLSXExporter writes the dataset to an Excel workbook, with an optional
// extra sheet of free-form summary lines.
type XLSXExporter struct {
	FileName string
}

// NewXLSXExporter creates an XLSXExporter targeting fileName.
func NewXLSXExporter(fileName string) *XLSXExporter {
	return &XLSXExporter{FileName: fileName}
}

func (e *XLSXExporter) Export(headers []string, rows [][]string) error {
	return e.ExportWithSummary(headers, rows, "", nil)
}

// ExportWithSummary writes the data sheet and, when summary lines are given,
// a second sheet holding them one per row.
func (e *XLSXExporter) ExportWithSummary(headers []string, rows [][]string, summarySheet string, summaryLines []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), dataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}

	if err := e.writeRow(f, dataSheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := e.writeRow(f, dataSheet, i+2, row); err != nil {
			return err
		}
	}

	if summarySheet != "" && len(summaryLines) > 0 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return fmt.Errorf("failed to create summary sheet: %w", err)
		}
		for i, line := range summaryLines {
			if err := e.writeRow(f, summarySheet, i+1, []string{line}); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(e.FileName); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *XLSXExporter) writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
