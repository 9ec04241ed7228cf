package scraper

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Block sentinels used in place of a real block name.
const (
	// TagAllDistricts marks the aggregate pseudo-district export.
	TagAllDistricts = "AllDistricts"
	// TagNoBlock marks a district that has no block-level breakdown.
	TagNoBlock = "NoBlock"
)

// NavigationContext is the (year, state, district, block) tuple currently
// selected in the UI. State, district and block hold sanitized labels;
// block may instead hold one of the sentinel tags.
type NavigationContext struct {
	Year     string
	State    string
	District string
	Block    string
}

// Sanitize makes a UI label usable as a path segment.
func Sanitize(label string) string {
	return strings.ReplaceAll(strings.ReplaceAll(label, "/", "-"), " ", "_")
}

// ArtifactPath is the destination of one exported CSV under the raw data root.
func (c NavigationContext) ArtifactPath(root, nutrient string) string {
	name := fmt.Sprintf("%s_%s.csv", c.Block, strings.ToLower(nutrient))
	return filepath.Join(root, c.Year, c.State, c.District, name)
}
