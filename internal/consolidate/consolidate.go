package consolidate

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Record is one normalized sample row. Missing values are absent keys or "".
type Record map[string]string

// Dataset is the consolidated output: ordered columns plus records.
type Dataset struct {
	Columns []string
	Records []Record
}

// Rows renders the records in column order, ready for CSV/XLSX writers.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.Records))
	for _, rec := range d.Records {
		row := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	return rows
}

// Consolidator merges every raw CSV under the raw data root into one
// normalized dataset.
type Consolidator struct {
	RawDataDir   string
	ProcessedDir string
	Log          *log.Logger
}

func New(rawDataDir, processedDir string, logger *log.Logger) *Consolidator {
	return &Consolidator{RawDataDir: rawDataDir, ProcessedDir: processedDir, Log: logger}
}

// mergeKeyColumns identify the same physical sample across the macro and
// micro exports.
var mergeKeyColumns = []string{"year", "state", "district", "block", "village", "farmer_name", "sample_id"}

// Run discovers, parses and merges all raw files.
func (c *Consolidator) Run() (*Dataset, error) {
	macroFiles, microFiles := c.findCSVFiles()
	if len(macroFiles) == 0 && len(microFiles) == 0 {
		return nil, fmt.Errorf("no CSV files found under %s", c.RawDataDir)
	}
	c.Log.Info("🔎 Found raw files", "macro", len(macroFiles), "micro", len(microFiles))

	macro := c.processFiles(macroFiles, "macro")
	micro := c.processFiles(microFiles, "micro")
	if len(macro) == 0 && len(micro) == 0 {
		return nil, fmt.Errorf("no data was successfully processed")
	}

	records := mergeMacroMicro(macro, micro, c.Log)
	return &Dataset{Columns: orderedColumns(records), Records: records}, nil
}

// findCSVFiles classifies every .csv under the raw root by the
// macro/micro filename substring.
func (c *Consolidator) findCSVFiles() (macro, micro []string) {
	_ = filepath.WalkDir(c.RawDataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".csv") {
			return nil
		}
		switch {
		case strings.Contains(name, "macro"):
			macro = append(macro, path)
		case strings.Contains(name, "micro"):
			micro = append(micro, path)
		default:
			c.Log.Warn("⚠️ Could not determine nutrient type", "file", path)
		}
		return nil
	})
	return macro, micro
}

func (c *Consolidator) processFiles(paths []string, nutrientType string) []Record {
	var records []Record
	for _, path := range paths {
		recs, err := c.processFile(path, nutrientType)
		if err != nil {
			c.Log.Error("⚠️ Error processing file", "file", path, "error", err)
			continue
		}
		c.Log.Info("📄 Processed file", "file", path, "rows", len(recs))
		records = append(records, recs...)
	}
	return records
}

// processFile reads one raw CSV, normalizes its headers, attaches the
// hierarchy metadata encoded in its path and cleans the numeric columns.
func (c *Consolidator) processFile(path, nutrientType string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("empty file")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CanonicalColumn(h)
	}

	meta := c.metadataFromPath(path)
	source, _ := filepath.Rel(c.RawDataDir, path)
	processedAt := time.Now().Format(time.RFC3339)

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers)+6)
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			col := headers[i]
			if slices.Contains(numericColumns, col) {
				rec[col] = CleanCell(col, cell)
			} else {
				rec[col] = strings.TrimSpace(cell)
			}
		}
		for k, v := range meta {
			rec[k] = v
		}
		rec["nutrient_type"] = nutrientType
		rec["source_file"] = filepath.ToSlash(source)
		rec["processed_date"] = processedAt
		records = append(records, rec)
	}
	return records, nil
}

var nutrientSuffix = regexp.MustCompile(`(?i)_(macro|micro)(nutrient)?$`)

// metadataFromPath recovers year/state/district/block from the hierarchy,
// reversing the sanitization applied when the file was stored.
func (c *Consolidator) metadataFromPath(path string) map[string]string {
	rel, err := filepath.Rel(c.RawDataDir, path)
	if err != nil {
		return nil
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 4 {
		c.Log.Warn("⚠️ Could not extract metadata from path", "file", path)
		return nil
	}

	block := strings.TrimSuffix(parts[3], filepath.Ext(parts[3]))
	block = nutrientSuffix.ReplaceAllString(block, "")

	return map[string]string{
		"year":     parts[0],
		"state":    unsanitize(parts[1]),
		"district": unsanitize(parts[2]),
		"block":    unsanitize(block),
	}
}

func unsanitize(segment string) string {
	return strings.ReplaceAll(strings.ReplaceAll(segment, "_", " "), "-", "/")
}

// mergeMacroMicro outer-joins the two nutrient datasets on the shared subset
// of the merge keys, preferring macro values when both sides carry the same
// column. Unmatched records from either side survive the join.
func mergeMacroMicro(macro, micro []Record, logger *log.Logger) []Record {
	if len(macro) == 0 {
		return micro
	}
	if len(micro) == 0 {
		return macro
	}

	var keys []string
	for _, key := range mergeKeyColumns {
		if columnPresent(macro, key) && columnPresent(micro, key) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		logger.Warn("⚠️ No common key columns, concatenating instead of merging")
		return append(macro, micro...)
	}
	logger.Info("🔗 Merging macro and micro data", "keys", keys)

	index := make(map[string][]Record, len(micro))
	for _, rec := range micro {
		k := joinKey(rec, keys)
		index[k] = append(index[k], rec)
	}

	merged := make([]Record, 0, len(macro))
	for _, rec := range macro {
		k := joinKey(rec, keys)
		if matches := index[k]; len(matches) > 0 {
			index[k] = matches[1:]
			for col, v := range matches[0] {
				if rec[col] == "" && v != "" {
					rec[col] = v
				}
			}
		}
		merged = append(merged, rec)
	}
	// Keep micro records that never found a macro counterpart.
	for _, remaining := range index {
		merged = append(merged, remaining...)
	}
	return merged
}

func columnPresent(records []Record, column string) bool {
	for _, rec := range records {
		if _, ok := rec[column]; ok {
			return true
		}
	}
	return false
}

func joinKey(rec Record, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = rec[k]
	}
	return strings.Join(parts, "\x1f")
}

// orderedColumns puts the canonical columns first, then any extras sorted.
func orderedColumns(records []Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for col := range rec {
			seen[col] = true
		}
	}

	var columns []string
	for _, col := range canonicalOrder {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}
	extras := make([]string, 0, len(seen))
	for col := range seen {
		extras = append(extras, col)
	}
	sort.Strings(extras)
	return append(columns, extras...)
}
