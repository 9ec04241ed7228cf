// Package scraper drives the soil health dashboard: a cascading
// year → state → district → block dropdown hierarchy rendered by a MUI
// frontend, with a data grid and a CSV export link per combination.
package scraper

import "fmt"

// Dropdown identifies one of the four cascading selection controls.
type Dropdown int

const (
	DropdownYear Dropdown = iota
	DropdownState
	DropdownDistrict
	DropdownBlock
)

// XPath returns the positional locator of the control. The dashboard renders
// the four selects as MUI comboboxes; the first two on the page belong to an
// unrelated widget.
func (d Dropdown) XPath() string {
	return fmt.Sprintf("(//div[@role='combobox' and contains(@class, 'MuiSelect-select')])[%d]", int(d)+3)
}

func (d Dropdown) String() string {
	switch d {
	case DropdownYear:
		return "year"
	case DropdownState:
		return "state"
	case DropdownDistrict:
		return "district"
	case DropdownBlock:
		return "block"
	}
	return "unknown"
}

// OptionSelector lists and selects options of a cascading dropdown. Option
// labels must be re-fetched before every selection: changing an ancestor
// level invalidates the option set below it.
type OptionSelector interface {
	// Options returns the current option labels, empty on failure.
	Options(d Dropdown) []string
	// Select picks the option whose text equals label exactly.
	Select(d Dropdown, label string) bool
}

// TableReader reads the currently rendered result grid.
type TableReader interface {
	ReadTable() []TableRow
}

// Exporter downloads the currently rendered table into the raw hierarchy.
type Exporter interface {
	ExportAndStore(nav NavigationContext) bool
}
