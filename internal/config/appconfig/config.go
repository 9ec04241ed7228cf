package appconfig

import (
	"flag"
)

// ScrapeConfig holds command line parameters for the scraper binary.
type ScrapeConfig struct {
	ConfigPath   string
	RawDataDir   string
	DashboardURL string
}

// ConsolidateConfig holds command line parameters for the consolidator binary.
type ConsolidateConfig struct {
	RawDataDir   string
	ProcessedDir string
}

// LoadScrapeConfig reads the scraper flags and returns the config struct.
func LoadScrapeConfig() *ScrapeConfig {
	configPath := flag.String("c", "", "Path to session config file (optional)")
	rawDir := flag.String("r", "data/raw", "Root directory for raw downloads")
	url := flag.String("u", "", "Dashboard URL override")
	flag.Parse()

	return &ScrapeConfig{
		ConfigPath:   *configPath,
		RawDataDir:   *rawDir,
		DashboardURL: *url,
	}
}

// LoadConsolidateConfig reads the consolidator flags and returns the config struct.
func LoadConsolidateConfig() *ConsolidateConfig {
	rawDir := flag.String("r", "data/raw", "Root directory of raw downloads")
	processedDir := flag.String("p", "data/processed", "Directory for consolidated output")
	flag.Parse()

	return &ConsolidateConfig{
		RawDataDir:   *rawDir,
		ProcessedDir: *processedDir,
	}
}
