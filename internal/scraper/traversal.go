package scraper

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Traversal walks the cascading hierarchy exactly once per reachable
// combination and exports at most one file per combination.
//
// States: SelectNutrient → IterateYears → IterateStates → IterateDistricts →
// (IterateBlocks | ExportAggregate | ExportNoBlock). SelectNutrient belongs
// to the session (Session.SelectNutrientView); the remaining states map onto
// the methods below. A failing node is logged and skipped so that its
// siblings still get visited; only an error escaping Run is session-fatal.
type Traversal struct {
	Dropdowns OptionSelector
	Table     TableReader
	Export    Exporter
	Skip      SkipPolicy
	Log       *log.Logger
}

// aggregateDistricts are the pseudo-district labels that roll up a whole
// state. They export immediately and never descend to blocks.
var aggregateDistricts = map[string]bool{
	"All Districts": true,
	"All_Districts": true,
}

// Run iterates all years. The year options are fetched once at entry; each
// selected year is re-validated against a fresh fetch because a page reset
// during traversal may have changed the option set.
func (t *Traversal) Run() error {
	years := t.Dropdowns.Options(DropdownYear)
	if len(years) == 0 {
		return errors.New("no year options found")
	}
	t.Log.Info("📅 Found years", "count", len(years), "years", years)

	for i, year := range years {
		t.Log.Info("📅 Selecting year", "year", year, "progress", fmt.Sprintf("%d/%d", i+1, len(years)))
		t.iterateYear(year)
	}
	return nil
}

func (t *Traversal) iterateYear(year string) {
	if t.Skip.ShouldSkipYear(year) {
		t.Log.Info("⏭️ Skipping year", "year", year, "reason", "already processed or in skip list")
		return
	}

	fresh := t.Dropdowns.Options(DropdownYear)
	if !slices.Contains(fresh, year) {
		t.Log.Warn("⚠️ Year no longer available in fresh dropdown", "year", year)
		return
	}
	if !t.Dropdowns.Select(DropdownYear, year) {
		t.Log.Warn("⚠️ Failed to select year", "year", year)
		return
	}

	states := t.Dropdowns.Options(DropdownState)
	if len(states) == 0 {
		t.Log.Info("⏭️ No states found", "year", year)
		return
	}
	t.Log.Info("🏛️ Found states", "year", year, "count", len(states))

	for _, state := range states {
		t.iterateState(year, state)
	}
	t.Log.Info("✅ Finished year", "year", year)
}

func (t *Traversal) iterateState(year, state string) {
	if !t.Dropdowns.Select(DropdownState, state) {
		t.Log.Warn("⚠️ Failed to select state", "state", state)
		return
	}
	t.Log.Info("🏛️ Processing state", "state", state)

	// An empty aggregate table means every district below is empty too.
	if len(t.Table.ReadTable()) == 0 {
		t.Log.Info("⏭️ Skipping state, empty table", "state", state)
		return
	}

	districts := t.Dropdowns.Options(DropdownDistrict)
	if len(districts) == 0 {
		t.Log.Info("⏭️ No districts found", "state", state)
		return
	}
	t.Log.Info("📍 Found districts", "state", state, "count", len(districts))

	validDistrict := false
	for i, district := range districts {
		t.Log.Info("📍 Processing district", "district", district, "progress", fmt.Sprintf("%d/%d", i+1, len(districts)))
		if t.iterateDistrict(year, state, district) {
			validDistrict = true
		}
	}
	if !validDistrict {
		t.Log.Info("⏭️ No valid data found for state", "state", state)
	}
	t.Log.Info("✅ Finished state", "state", state)
}

// iterateDistrict handles one district and reports whether it held data.
// Failures inside it never escape: the sibling districts must still run.
func (t *Traversal) iterateDistrict(year, state, district string) (hasData bool) {
	defer func() {
		if r := recover(); r != nil {
			t.Log.Error("⚠️ District processing error", "district", district, "panic", r)
			hasData = false
		}
	}()

	if !t.Dropdowns.Select(DropdownDistrict, district) {
		t.Log.Warn("⚠️ Failed to select district", "district", district)
		return false
	}
	if len(t.Table.ReadTable()) == 0 {
		t.Log.Info("⏭️ Skipping district, no data found", "district", district)
		return false
	}

	nav := NavigationContext{
		Year:     year,
		State:    Sanitize(state),
		District: Sanitize(district),
	}

	if aggregateDistricts[district] {
		t.Log.Info("📊 Aggregate district, downloading without block iteration", "district", district)
		nav.Block = TagAllDistricts
		t.Export.ExportAndStore(nav)
		return true
	}

	blocks := t.Dropdowns.Options(DropdownBlock)
	if len(blocks) == 0 {
		t.Log.Info("⏭️ No blocks, saving district-level CSV", "district", district)
		nav.Block = TagNoBlock
		t.Export.ExportAndStore(nav)
		return true
	}
	t.Log.Info("🏘️ Found blocks", "district", district, "count", len(blocks))

	for i, block := range blocks {
		t.Log.Info("🏘️ Processing block", "block", block, "progress", fmt.Sprintf("%d/%d", i+1, len(blocks)))
		t.iterateBlock(nav, block)
	}
	return true
}

func (t *Traversal) iterateBlock(nav NavigationContext, block string) {
	defer func() {
		if r := recover(); r != nil {
			t.Log.Error("⚠️ Block processing error", "block", block, "panic", r)
		}
	}()

	if !t.Dropdowns.Select(DropdownBlock, block) {
		t.Log.Warn("⚠️ Failed to select block", "block", block)
		return
	}
	if len(t.Table.ReadTable()) == 0 {
		t.Log.Info("⏭️ No data found for block", "block", block)
		return
	}

	nav.Block = Sanitize(block)
	t.Export.ExportAndStore(nav)
}
