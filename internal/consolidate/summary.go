package consolidate

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	csvexport "soilhealth/internal/exporter/csv"
	xlsxexport "soilhealth/internal/exporter/xlsx"
)

// Range holds the distribution of one nutrient column.
type Range struct {
	Min, Max, Mean, Median float64
}

// Summary describes the consolidated dataset.
type Summary struct {
	TotalRecords   int
	UniqueFarmers  int
	Years          []string
	States         []string
	Districts      int
	Blocks         int
	MissingData    map[string]float64
	NutrientRanges map[string]Range
}

// Summarize computes counts, missing-data percentages and nutrient ranges.
func Summarize(ds *Dataset) Summary {
	s := Summary{
		TotalRecords:   len(ds.Records),
		MissingData:    make(map[string]float64),
		NutrientRanges: make(map[string]Range),
	}
	if len(ds.Records) == 0 {
		return s
	}

	s.UniqueFarmers = countUnique(ds.Records, "farmer_name")
	s.Years = uniqueValues(ds.Records, "year")
	s.States = uniqueValues(ds.Records, "state")
	s.Districts = countUnique(ds.Records, "district")
	s.Blocks = countUnique(ds.Records, "block")

	for _, col := range ds.Columns {
		missing := 0
		for _, rec := range ds.Records {
			if rec[col] == "" {
				missing++
			}
		}
		if missing > 0 {
			pct := float64(missing) / float64(len(ds.Records)) * 100
			s.MissingData[col] = math.Round(pct*100) / 100
		}
	}

	for _, col := range nutrientColumns {
		var values []float64
		for _, rec := range ds.Records {
			if rec[col] == "" {
				continue
			}
			if v, err := strconv.ParseFloat(rec[col], 64); err == nil {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			s.NutrientRanges[col] = describe(values)
		}
	}
	return s
}

func describe(values []float64) Range {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return Range{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: median,
	}
}

func countUnique(records []Record, column string) int {
	return len(uniqueValues(records, column))
}

func uniqueValues(records []Record, column string) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		if v := rec[column]; v != "" {
			seen[v] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// ReportLines renders the human-readable summary written next to the data.
func (s Summary) ReportLines() []string {
	lines := []string{
		"SOIL HEALTH DATA CONSOLIDATION SUMMARY",
		strings.Repeat("=", 50),
		"",
		fmt.Sprintf("Processing Date: %s", time.Now().Format("2006-01-02 15:04:05")),
		"",
		fmt.Sprintf("Total Records: %d", s.TotalRecords),
		fmt.Sprintf("Unique Farmers: %d", s.UniqueFarmers),
		fmt.Sprintf("Years Covered: %s", strings.Join(s.Years, ", ")),
		fmt.Sprintf("States Covered: %d", len(s.States)),
		fmt.Sprintf("Districts Covered: %d", s.Districts),
		fmt.Sprintf("Blocks Covered: %d", s.Blocks),
		"",
	}

	if len(s.MissingData) > 0 {
		lines = append(lines, "MISSING DATA SUMMARY (% missing):", strings.Repeat("-", 30))
		cols := make([]string, 0, len(s.MissingData))
		for col := range s.MissingData {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			lines = append(lines, fmt.Sprintf("%s: %.2f%%", col, s.MissingData[col]))
		}
		lines = append(lines, "")
	}

	if len(s.NutrientRanges) > 0 {
		lines = append(lines, "NUTRIENT VALUE RANGES:", strings.Repeat("-", 30))
		for _, col := range nutrientColumns {
			r, ok := s.NutrientRanges[col]
			if !ok {
				continue
			}
			lines = append(lines,
				fmt.Sprintf("%s:", strings.ToUpper(col)),
				fmt.Sprintf("  Min: %.2f", r.Min),
				fmt.Sprintf("  Max: %.2f", r.Max),
				fmt.Sprintf("  Mean: %.2f", r.Mean),
				fmt.Sprintf("  Median: %.2f", r.Median),
				"")
		}
	}
	return lines
}

// Save writes the consolidated CSV, the Excel workbook, the text summary and
// one CSV per year into the processed directory.
func (c *Consolidator) Save(ds *Dataset, summary Summary) error {
	if len(ds.Records) == 0 {
		return fmt.Errorf("cannot save empty dataset")
	}
	if err := os.MkdirAll(c.ProcessedDir, 0o755); err != nil {
		return fmt.Errorf("failed to create processed directory: %w", err)
	}

	rows := ds.Rows()

	consolidated := filepath.Join(c.ProcessedDir, "soil_health_consolidated.csv")
	if err := csvexport.NewCSVExporter(consolidated).Export(ds.Columns, rows); err != nil {
		return err
	}
	c.Log.Info("💾 Saved consolidated data", "file", consolidated)

	workbook := filepath.Join(c.ProcessedDir, "soil_health_consolidated.xlsx")
	xl := xlsxexport.NewXLSXExporter(workbook)
	if err := xl.ExportWithSummary(ds.Columns, rows, "Summary", summary.ReportLines()); err != nil {
		return err
	}
	c.Log.Info("💾 Saved workbook", "file", workbook)

	report := filepath.Join(c.ProcessedDir, "consolidation_summary.txt")
	content := strings.Join(summary.ReportLines(), "\n") + "\n"
	if err := os.WriteFile(report, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	c.Log.Info("💾 Saved summary report", "file", report)

	for _, year := range summary.Years {
		var yearRows [][]string
		for i, rec := range ds.Records {
			if rec["year"] == year {
				yearRows = append(yearRows, rows[i])
			}
		}
		yearFile := filepath.Join(c.ProcessedDir, fmt.Sprintf("soil_health_%s.csv", year))
		if err := csvexport.NewCSVExporter(yearFile).Export(ds.Columns, yearRows); err != nil {
			return err
		}
		c.Log.Info("💾 Saved yearly data", "year", year, "file", yearFile)
	}
	return nil
}
