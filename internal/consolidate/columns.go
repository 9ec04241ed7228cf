package consolidate

import (
	"regexp"
	"strconv"
	"strings"
)

// columnSynonyms maps each canonical column name to the header variants the
// dashboard has been seen exporting. Lookup is case-insensitive. New export
// formats get resolved by adding variants here.
var columnSynonyms = map[string][]string{
	"village":         {"village", "village_name", "Village Name"},
	"farmer_name":     {"farmer_name", "farmer name"},
	"mobile":          {"mobile", "mobile_no", "Mobile No", "phone"},
	"survey_no":       {"survey_no", "survey number"},
	"area_hectare":    {"area_hectare", "area (hectare)", "area"},
	"sample_id":       {"sample_id", "sample id"},
	"collection_date": {"collection_date", "date", "Collection Date"},

	// Macro nutrients.
	"ph":         {"ph"},
	"ec":         {"ec", "electrical_conductivity"},
	"oc":         {"oc", "organic_carbon"},
	"nitrogen":   {"n", "nitrogen"},
	"phosphorus": {"p", "phosphorus"},
	"potassium":  {"k", "potassium"},

	// Micro nutrients.
	"iron":      {"fe", "iron"},
	"manganese": {"mn", "manganese"},
	"copper":    {"cu", "copper"},
	"zinc":      {"zn", "zinc"},
	"boron":     {"b", "boron"},
	"sulphur":   {"s", "sulphur", "sulfur"},
}

// nutrientColumns are the measured values that get range statistics and a
// non-negativity clip.
var nutrientColumns = []string{
	"ph", "ec", "oc", "nitrogen", "phosphorus", "potassium",
	"iron", "manganese", "copper", "zinc", "boron", "sulphur",
}

// numericColumns are all columns subject to numeric cleaning.
var numericColumns = append([]string{"area_hectare"}, nutrientColumns...)

// canonicalOrder fixes the column order of the consolidated output. Columns
// outside this list are appended alphabetically.
var canonicalOrder = []string{
	"year", "state", "district", "block",
	"village", "farmer_name", "mobile", "survey_no", "area_hectare",
	"sample_id", "collection_date",
	"ph", "ec", "oc", "nitrogen", "phosphorus", "potassium",
	"iron", "manganese", "copper", "zinc", "boron", "sulphur",
	"nutrient_type", "source_file", "processed_date",
}

var synonymLookup = func() map[string]string {
	lookup := make(map[string]string)
	for canonical, variants := range columnSynonyms {
		for _, v := range variants {
			lookup[strings.ToLower(v)] = canonical
		}
	}
	return lookup
}()

// CanonicalColumn resolves a raw header to its canonical name. Unknown
// headers are kept, lowercased.
func CanonicalColumn(header string) string {
	header = strings.TrimSpace(header)
	if canonical, ok := synonymLookup[strings.ToLower(header)]; ok {
		return canonical
	}
	return strings.ToLower(header)
}

var (
	nonNumericChars = regexp.MustCompile(`[^0-9.\-]`)
	dashRuns        = regexp.MustCompile(`--+`)
)

var missingMarkers = map[string]bool{
	"": true, "-": true, "NA": true, "N/A": true,
	"null": true, "NULL": true, "None": true,
}

// CleanNumeric parses a raw cell into a float, reporting false for missing
// or unparseable values. Stray units and separators are stripped first.
func CleanNumeric(raw string) (float64, bool) {
	if missingMarkers[strings.TrimSpace(raw)] {
		return 0, false
	}
	cleaned := nonNumericChars.ReplaceAllString(raw, "")
	cleaned = dashRuns.ReplaceAllString(cleaned, "")
	if missingMarkers[cleaned] {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// nonNegativeColumns cannot hold values below zero. EC and OC are left
// unclipped, matching the historical cleaning rules.
var nonNegativeColumns = map[string]bool{
	"area_hectare": true,
	"nitrogen":     true, "phosphorus": true, "potassium": true,
	"iron": true, "manganese": true, "copper": true,
	"zinc": true, "boron": true, "sulphur": true,
}

// ClipValue drops values outside the physically possible range of a column:
// pH must sit in [0,14], areas and element measurements cannot be negative.
func ClipValue(column string, v float64) (float64, bool) {
	if column == "ph" && (v < 0 || v > 14) {
		return 0, false
	}
	if nonNegativeColumns[column] && v < 0 {
		return 0, false
	}
	return v, true
}

// CleanCell combines parsing and clipping; the result is a normalized string
// representation, or "" for a missing value.
func CleanCell(column, raw string) string {
	v, ok := CleanNumeric(raw)
	if !ok {
		return ""
	}
	if v, ok = ClipValue(column, v); !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
