package scraper

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	exportLinkXPath = "//a[contains(text(),'Export to CSV')]"

	// The dashboard always downloads under this name.
	downloadedFileName = "my-file.csv"

	downloadPollInterval = time.Second
	downloadPollLimit    = 10
)

// ExportHandler triggers the CSV export and relocates the downloaded
// artifact into the raw data hierarchy.
type ExportHandler struct {
	session      *Session
	rawDataDir   string
	downloadsDir string
	nutrient     string
	log          *log.Logger

	pollInterval time.Duration
	pollLimit    int
}

func NewExportHandler(session *Session, rawDataDir, downloadsDir, nutrient string, logger *log.Logger) *ExportHandler {
	return &ExportHandler{
		session:      session,
		rawDataDir:   rawDataDir,
		downloadsDir: downloadsDir,
		nutrient:     nutrient,
		log:          logger,
		pollInterval: downloadPollInterval,
		pollLimit:    downloadPollLimit,
	}
}

// ExportAndStore clicks the export link, waits for the download to land and
// moves it to its destination. A missing download is recoverable: traversal
// continues with the next combination.
func (e *ExportHandler) ExportAndStore(nav NavigationContext) bool {
	link, err := e.session.page.Timeout(uiTimeout).ElementX(exportLinkXPath)
	if err != nil {
		e.log.Warn("⚠️ Export link not found", "error", err)
		return false
	}
	// The link sits behind the grid overlay; a native click is flaky here.
	if _, err := link.Eval(`() => this.click()`); err != nil {
		e.log.Warn("⚠️ Export click failed", "error", err)
		return false
	}
	time.Sleep(3 * time.Second)

	return e.store(nav)
}

// store polls the staging directory for the fixed download name and moves
// the artifact to the path derived from nav.
func (e *ExportHandler) store(nav NavigationContext) bool {
	staged := filepath.Join(e.downloadsDir, downloadedFileName)

	found := false
	for i := 0; i < e.pollLimit; i++ {
		if _, err := os.Stat(staged); err == nil {
			found = true
			break
		}
		time.Sleep(e.pollInterval)
	}
	if !found {
		e.log.Warn("⚠️ Downloaded file not found", "path", staged)
		return false
	}

	dest := nav.ArtifactPath(e.rawDataDir, e.nutrient)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		e.log.Warn("⚠️ Failed to create destination directory", "path", dest, "error", err)
		return false
	}
	if err := moveFile(staged, dest); err != nil {
		e.log.Warn("⚠️ Failed to move downloaded file", "path", dest, "error", err)
		return false
	}

	e.log.Info("✅ Downloaded and saved", "path", dest)
	return true
}

// moveFile renames src to dest, degrading to copy+remove when the two live
// on different filesystems (Downloads is often a separate mount).
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open downloaded file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy downloaded file: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	in.Close()
	return os.Remove(src)
}
