package scraper

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// minExistingFiles is how many matching CSV files a year directory must
// already hold before the year counts as done. A file count, not a content
// check: the policy is advisory and only exists to make restarts cheap.
const minExistingFiles = 5

// SkipPolicy decides, before any browser interaction, whether a year can be
// bypassed entirely.
type SkipPolicy struct {
	RawDataDir string
	Nutrient   string
	SkipYears  []string
}

// ShouldSkipYear reports whether year is in the configured skip set or its
// output directory already has enough files for this nutrient category.
func (p SkipPolicy) ShouldSkipYear(year string) bool {
	if slices.Contains(p.SkipYears, year) {
		return true
	}
	return p.existingFileCount(year) >= minExistingFiles
}

func (p SkipPolicy) existingFileCount(year string) int {
	tag := strings.ToLower(p.Nutrient)
	count := 0
	root := filepath.Join(p.RawDataDir, year)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".csv") && strings.Contains(name, tag) {
			count++
		}
		return nil
	})
	return count
}
