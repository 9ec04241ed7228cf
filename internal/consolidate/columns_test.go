package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalColumn(t *testing.T) {
	testCases := []struct {
		header   string
		expected string
	}{
		{"Farmer Name", "farmer_name"},
		{"farmer_name", "farmer_name"},
		{"pH", "ph"},
		{"PH", "ph"},
		{"Fe", "iron"},
		{"N", "nitrogen"},
		{"Sulfur", "sulphur"},
		{"Village Name", "village"},
		{"Area (Hectare)", "area_hectare"},
		{"Mobile No", "mobile"},
		{"Totally Unknown", "totally unknown"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CanonicalColumn(tc.header), "header %q", tc.header)
	}
}

func TestCleanNumeric(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"7.2", 7.2, true},
		{" 7.2 ", 7.2, true},
		{"7.2 dS/m", 7.2, true},
		{"1,234", 1234, true},
		{"-3.5", -3.5, true},
		{"", 0, false},
		{"-", 0, false},
		{"--", 0, false},
		{"NA", 0, false},
		{"N/A", 0, false},
		{"null", 0, false},
		{"None", 0, false},
	}
	for _, tc := range testCases {
		v, ok := CleanNumeric(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw %q", tc.raw)
		if tc.ok {
			assert.InDelta(t, tc.expected, v, 1e-9, "raw %q", tc.raw)
		}
	}
}

func TestClipValue(t *testing.T) {
	_, ok := ClipValue("ph", 15)
	assert.False(t, ok, "pH above 14 must be dropped")
	_, ok = ClipValue("ph", -1)
	assert.False(t, ok, "negative pH must be dropped")
	v, ok := ClipValue("ph", 7.4)
	assert.True(t, ok)
	assert.Equal(t, 7.4, v)

	_, ok = ClipValue("nitrogen", -5)
	assert.False(t, ok, "negative nutrient must be dropped")
	_, ok = ClipValue("area_hectare", -0.1)
	assert.False(t, ok, "negative area must be dropped")

	// EC carries no clip.
	v, ok = ClipValue("ec", -1)
	assert.True(t, ok)
	assert.Equal(t, -1.0, v)
}

func TestCleanCell(t *testing.T) {
	assert.Equal(t, "7.2", CleanCell("ph", "7.2"))
	assert.Equal(t, "", CleanCell("ph", "15"))
	assert.Equal(t, "", CleanCell("nitrogen", "NA"))
	assert.Equal(t, "240.5", CleanCell("nitrogen", "240.5 kg/ha"))
}
