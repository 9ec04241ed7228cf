package taskconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDashboardURL is the soil health dashboard entry point.
const DefaultDashboardURL = "https://soilhealth.dac.gov.in/piechart"

// SessionConfig describes one scraping session: a nutrient category bound to
// its own browser instance.
type SessionConfig struct {
	// Nutrient is the exact label of the dashboard view toggle,
	// e.g. "MacroNutrient" or "MicroNutrient".
	Nutrient string `json:"nutrient"`
	// Port is the Chrome remote debugging port. Each session needs its own.
	Port int `json:"port"`
	// SkipYears lists year labels, exactly as shown in the UI, that the
	// session must never traverse.
	SkipYears []string `json:"skipYears"`
	// DownloadsDir is where the browser drops exported files. Defaults to
	// the user's Downloads directory.
	DownloadsDir string `json:"downloads"`
	// URL overrides the dashboard URL.
	URL string `json:"url"`
}

// Loader is the session config loading interface.
type Loader interface {
	Load(filePath string) ([]SessionConfig, error)
}

// JSONSessionsLoader loads session configs from a JSON file.
type JSONSessionsLoader struct{}

func (j *JSONSessionsLoader) Load(filePath string) ([]SessionConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var configs []SessionConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for i := range configs {
		configs[i].applyDefaults()
	}
	return configs, nil
}

// Defaults returns the standard pair of sessions: macro and micro nutrients
// on separate debugging ports, with the current incomplete year skipped.
func Defaults() []SessionConfig {
	configs := []SessionConfig{
		{Nutrient: "MacroNutrient", Port: 9222, SkipYears: []string{"2025-26"}},
		{Nutrient: "MicroNutrient", Port: 9223, SkipYears: []string{"2025-26"}},
	}
	for i := range configs {
		configs[i].applyDefaults()
	}
	return configs
}

func (c *SessionConfig) applyDefaults() {
	if c.URL == "" {
		c.URL = DefaultDashboardURL
	}
	if c.DownloadsDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.DownloadsDir = filepath.Join(home, "Downloads")
		}
	}
}
