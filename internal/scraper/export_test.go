package scraper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilhealth/internal/lib/logger"
)

func testExportHandler(t *testing.T) (*ExportHandler, string, string) {
	t.Helper()
	rawDir := t.TempDir()
	downloadsDir := t.TempDir()
	h := &ExportHandler{
		rawDataDir:   rawDir,
		downloadsDir: downloadsDir,
		nutrient:     "MacroNutrient",
		log:          logger.New(),
		pollInterval: 10 * time.Millisecond,
		pollLimit:    10,
	}
	return h, rawDir, downloadsDir
}

func TestStoreMovesDownloadedArtifact(t *testing.T) {
	h, rawDir, downloadsDir := testExportHandler(t)

	staged := filepath.Join(downloadsDir, downloadedFileName)
	require.NoError(t, os.WriteFile(staged, []byte("a,b\n1,2\n"), 0o644))

	nav := NavigationContext{Year: "2023-24", State: "StateA", District: "DistrictB", Block: "Petlad"}
	assert.True(t, h.store(nav))

	dest := filepath.Join(rawDir, "2023-24", "StateA", "DistrictB", "Petlad_macronutrient.csv")
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	// Moved, not copied.
	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreWaitsForLateDownload(t *testing.T) {
	h, rawDir, downloadsDir := testExportHandler(t)

	staged := filepath.Join(downloadsDir, downloadedFileName)
	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = os.WriteFile(staged, []byte("x\n"), 0o644)
	}()

	nav := NavigationContext{Year: "2023-24", State: "StateA", District: "DistrictB", Block: TagNoBlock}
	assert.True(t, h.store(nav))
	_, err := os.Stat(filepath.Join(rawDir, "2023-24", "StateA", "DistrictB", "NoBlock_macronutrient.csv"))
	assert.NoError(t, err)
}

func TestStoreTimesOutWithoutDownload(t *testing.T) {
	h, rawDir, _ := testExportHandler(t)

	nav := NavigationContext{Year: "2023-24", State: "StateA", District: "DistrictB", Block: "Petlad"}
	assert.False(t, h.store(nav))

	// No partial file left behind.
	entries, err := os.ReadDir(rawDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMoveFileAcrossDirectories(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.csv")
	dest := filepath.Join(t.TempDir(), "dest.csv")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, moveFile(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}
