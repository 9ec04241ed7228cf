package consolidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilhealth/internal/lib/logger"
)

func writeRawCSV(t *testing.T, root string, segments []string, name, content string) {
	t.Helper()
	dir := filepath.Join(append([]string{root}, segments...)...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testConsolidator(t *testing.T) (*Consolidator, string) {
	t.Helper()
	raw := t.TempDir()
	return New(raw, t.TempDir(), logger.New()), raw
}

func TestRunNormalizesAndAttachesMetadata(t *testing.T) {
	c, raw := testConsolidator(t)
	writeRawCSV(t, raw,
		[]string{"2023-24", "Dadra-Nagar_Haveli", "Anand-Kheda_Region"},
		"Petlad_macronutrient.csv",
		"Village Name,Farmer Name,Sample ID,pH,N\nRavli,Ramesh,S-1,7.2,240\n")

	ds, err := c.Run()
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)

	rec := ds.Records[0]
	assert.Equal(t, "2023-24", rec["year"])
	assert.Equal(t, "Dadra/Nagar Haveli", rec["state"])
	assert.Equal(t, "Anand/Kheda Region", rec["district"])
	assert.Equal(t, "Petlad", rec["block"])
	assert.Equal(t, "Ravli", rec["village"])
	assert.Equal(t, "Ramesh", rec["farmer_name"])
	assert.Equal(t, "7.2", rec["ph"])
	assert.Equal(t, "240", rec["nitrogen"])
	assert.Equal(t, "macro", rec["nutrient_type"])
	assert.Equal(t, "2023-24/Dadra-Nagar_Haveli/Anand-Kheda_Region/Petlad_macronutrient.csv", rec["source_file"])
}

func TestRunCleansOutOfRangeValues(t *testing.T) {
	c, raw := testConsolidator(t)
	writeRawCSV(t, raw,
		[]string{"2023-24", "StateA", "DistrictB"},
		"NoBlock_macronutrient.csv",
		"Sample ID,pH,N\nS-1,15,NA\nS-2,6.8,120\n")

	ds, err := c.Run()
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, "", ds.Records[0]["ph"], "pH outside [0,14] is dropped")
	assert.Equal(t, "", ds.Records[0]["nitrogen"])
	assert.Equal(t, "6.8", ds.Records[1]["ph"])
}

func TestRunMergesMacroAndMicroBySample(t *testing.T) {
	c, raw := testConsolidator(t)
	writeRawCSV(t, raw,
		[]string{"2023-24", "StateA", "DistrictB"},
		"Petlad_macronutrient.csv",
		"Village Name,Farmer Name,Sample ID,pH\nRavli,Ramesh,S-1,7.2\n")
	writeRawCSV(t, raw,
		[]string{"2023-24", "StateA", "DistrictB"},
		"Petlad_micronutrient.csv",
		"Village Name,Farmer Name,Sample ID,Fe\nRavli,Ramesh,S-1,4.5\nRavli,Suresh,S-2,3.1\n")

	ds, err := c.Run()
	require.NoError(t, err)
	require.Len(t, ds.Records, 2, "matched pair merges, unmatched micro survives")

	var merged, microOnly Record
	for _, rec := range ds.Records {
		switch rec["sample_id"] {
		case "S-1":
			merged = rec
		case "S-2":
			microOnly = rec
		}
	}
	require.NotNil(t, merged)
	assert.Equal(t, "7.2", merged["ph"])
	assert.Equal(t, "4.5", merged["iron"], "micro value joined onto the macro record")

	require.NotNil(t, microOnly)
	assert.Equal(t, "3.1", microOnly["iron"])
	assert.Equal(t, "", microOnly["ph"])
}

func TestRunFailsOnEmptyTree(t *testing.T) {
	c, _ := testConsolidator(t)
	_, err := c.Run()
	assert.Error(t, err)
}

func TestOrderedColumnsCanonicalFirst(t *testing.T) {
	records := []Record{{"zebra": "1", "ph": "7", "year": "2023-24", "village": "Ravli"}}
	assert.Equal(t, []string{"year", "village", "ph", "zebra"}, orderedColumns(records))
}

func TestSummarize(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"year", "state", "district", "block", "farmer_name", "ph"},
		Records: []Record{
			{"year": "2023-24", "state": "StateA", "district": "D1", "block": "B1", "farmer_name": "Ramesh", "ph": "6"},
			{"year": "2023-24", "state": "StateA", "district": "D1", "block": "B2", "farmer_name": "Suresh", "ph": "8"},
			{"year": "2022-23", "state": "StateB", "district": "D2", "block": "B3", "farmer_name": "Ramesh", "ph": ""},
		},
	}
	s := Summarize(ds)

	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, 2, s.UniqueFarmers)
	assert.Equal(t, []string{"2022-23", "2023-24"}, s.Years)
	assert.Equal(t, []string{"StateA", "StateB"}, s.States)
	assert.Equal(t, 2, s.Districts)
	assert.Equal(t, 3, s.Blocks)

	require.Contains(t, s.NutrientRanges, "ph")
	r := s.NutrientRanges["ph"]
	assert.Equal(t, 6.0, r.Min)
	assert.Equal(t, 8.0, r.Max)
	assert.Equal(t, 7.0, r.Mean)
	assert.Equal(t, 7.0, r.Median)

	assert.InDelta(t, 33.33, s.MissingData["ph"], 0.01)
}

func TestSaveWritesAllOutputs(t *testing.T) {
	c, raw := testConsolidator(t)
	writeRawCSV(t, raw,
		[]string{"2023-24", "StateA", "DistrictB"},
		"NoBlock_macronutrient.csv",
		"Sample ID,pH\nS-1,7.2\n")
	writeRawCSV(t, raw,
		[]string{"2022-23", "StateA", "DistrictB"},
		"NoBlock_macronutrient.csv",
		"Sample ID,pH\nS-2,6.5\n")

	ds, err := c.Run()
	require.NoError(t, err)
	require.NoError(t, c.Save(ds, Summarize(ds)))

	for _, name := range []string{
		"soil_health_consolidated.csv",
		"soil_health_consolidated.xlsx",
		"consolidation_summary.txt",
		"soil_health_2023-24.csv",
		"soil_health_2022-23.csv",
	} {
		_, err := os.Stat(filepath.Join(c.ProcessedDir, name))
		assert.NoError(t, err, "missing output %s", name)
	}
}
