package main

import (
	"context"

	"soilhealth/internal/config/appconfig"
	"soilhealth/internal/config/taskconfig"
	"soilhealth/internal/lib/logger"
	"soilhealth/internal/lib/work"
	"soilhealth/internal/scraper"
)

func main() {
	cfg := appconfig.LoadScrapeConfig()
	log := logger.New()
	log.Info("🚀 Starting dual nutrient scraping")

	sessions := taskconfig.Defaults()
	if cfg.ConfigPath != "" {
		loader := &taskconfig.JSONSessionsLoader{}
		loaded, err := loader.Load(cfg.ConfigPath)
		if err != nil {
			log.Fatal("Failed to load session config", "error", err)
		}
		sessions = loaded
	}
	if cfg.DashboardURL != "" {
		for i := range sessions {
			sessions[i].URL = cfg.DashboardURL
		}
	}

	// One worker per session: the categories run concurrently, each bound
	// to its own browser, sharing nothing.
	pool, err := work.NewPool(len(sessions), len(sessions))
	if err != nil {
		log.Fatal("Failed to create worker pool", "error", err)
	}
	pool.Start(context.Background())

	for _, sc := range sessions {
		pool.Submit(&scraper.SessionTask{
			Config:     sc,
			RawDataDir: cfg.RawDataDir,
			Log:        logger.ForSession(sc.Nutrient),
		})
	}
	pool.Stop()

	log.Info("🎉 All scraping sessions completed")
}
