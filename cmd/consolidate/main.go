package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soilhealth/internal/config/appconfig"
	"soilhealth/internal/consolidate"
	"soilhealth/internal/lib/logger"
)

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("36")).
	Padding(0, 2)

func main() {
	cfg := appconfig.LoadConsolidateConfig()
	log := logger.New()
	log.Info("🚀 Starting soil health data consolidation")

	consolidator := consolidate.New(cfg.RawDataDir, cfg.ProcessedDir, log)

	dataset, err := consolidator.Run()
	if err != nil {
		log.Fatal("Consolidation failed", "error", err)
	}
	summary := consolidate.Summarize(dataset)

	if err := consolidator.Save(dataset, summary); err != nil {
		log.Fatal("Failed to save consolidated data", "error", err)
	}

	lines := []string{
		fmt.Sprintf("📊 Total records   %d", summary.TotalRecords),
		fmt.Sprintf("👥 Unique farmers  %d", summary.UniqueFarmers),
		fmt.Sprintf("📅 Years           %s", strings.Join(summary.Years, ", ")),
		fmt.Sprintf("🏛️ States          %d", len(summary.States)),
		fmt.Sprintf("📍 Districts       %d", summary.Districts),
		fmt.Sprintf("🏘️ Blocks          %d", summary.Blocks),
	}
	fmt.Println(summaryStyle.Render(strings.Join(lines, "\n")))

	log.Info("🎉 Consolidation completed", "output", cfg.ProcessedDir)
}
