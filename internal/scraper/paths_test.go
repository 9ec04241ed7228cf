package scraper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	testCases := []struct {
		label    string
		expected string
	}{
		{"Anand/Kheda Region", "Anand-Kheda_Region"},
		{"All Districts", "All_Districts"},
		{"Gujarat", "Gujarat"},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Sanitize(tc.label))
	}
}

func TestArtifactPath(t *testing.T) {
	nav := NavigationContext{
		Year:     "2023-24",
		State:    "Gujarat",
		District: "Anand-Kheda_Region",
		Block:    "Petlad",
	}
	expected := filepath.Join("data", "raw", "2023-24", "Gujarat", "Anand-Kheda_Region", "Petlad_macronutrient.csv")
	assert.Equal(t, expected, nav.ArtifactPath(filepath.Join("data", "raw"), "MacroNutrient"))
}

func TestArtifactPathSentinels(t *testing.T) {
	nav := NavigationContext{Year: "2023-24", State: "StateA", District: "All_Districts", Block: TagAllDistricts}
	assert.Equal(t,
		filepath.Join("raw", "2023-24", "StateA", "All_Districts", "AllDistricts_micronutrient.csv"),
		nav.ArtifactPath("raw", "MicroNutrient"))

	nav.Block = TagNoBlock
	assert.Equal(t,
		filepath.Join("raw", "2023-24", "StateA", "All_Districts", "NoBlock_micronutrient.csv"),
		nav.ArtifactPath("raw", "MicroNutrient"))
}
