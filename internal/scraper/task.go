package scraper

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"soilhealth/internal/config/taskconfig"
)

// SessionTask runs one full scraping session for a nutrient category. It
// satisfies work.Executor so the two categories can run as independent pool
// workers with no shared state.
type SessionTask struct {
	Config     taskconfig.SessionConfig
	RawDataDir string
	Log        *log.Logger
}

// Execute launches the browser, selects the nutrient view and runs the
// traversal. The browser is closed on the way out no matter where failure
// occurred. Mid-traversal cancellation is not supported: the context is only
// honored before the browser starts.
func (t *SessionTask) Execute(ctx context.Context) (err error) {
	select {
	case <-ctx.Done():
		return fmt.Errorf("session canceled before start: %w", ctx.Err())
	default:
	}

	session := NewSession(t.Config, t.Log)
	if err := session.Start(); err != nil {
		return err
	}
	defer session.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("critical error in main loop: %v", r)
		}
	}()

	if err := session.SelectNutrientView(); err != nil {
		return fmt.Errorf("failed to select %s view: %w", t.Config.Nutrient, err)
	}
	t.Log.Info("🚀 Started scraping")

	dropdowns := NewDropdowns(session, t.Log)
	traversal := &Traversal{
		Dropdowns: dropdowns,
		Table:     NewTable(session, t.Log),
		Export:    NewExportHandler(session, t.RawDataDir, t.Config.DownloadsDir, t.Config.Nutrient, t.Log),
		Skip: SkipPolicy{
			RawDataDir: t.RawDataDir,
			Nutrient:   t.Config.Nutrient,
			SkipYears:  t.Config.SkipYears,
		},
		Log: t.Log,
	}

	if err := traversal.Run(); err != nil {
		return err
	}

	t.Log.Info("🏁 Scraping completed, closing browser")
	return nil
}

func (t *SessionTask) OnError(err error) {
	t.Log.Error("❌ Scraping session failed", "error", err)
}
