package logger

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger with the application-wide defaults.
func New() *log.Logger {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return logger
}

// ForSession returns a logger whose output is tagged with the nutrient
// category, so interleaved lines from concurrent sessions stay readable.
func ForSession(nutrient string) *log.Logger {
	logger := New()
	logger.SetPrefix(nutrient)
	return logger
}
