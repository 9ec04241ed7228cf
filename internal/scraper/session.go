package scraper

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"soilhealth/internal/config/taskconfig"
)

// uiTimeout bounds every wait on a UI element. The dashboard renders
// asynchronously and can take a while under load, but no wait is unbounded.
const uiTimeout = 20 * time.Second

// Session owns one browser bound to its own remote debugging port. All
// interaction within a session is strictly sequential: the dashboard holds
// single-threaded UI state (one dropdown open, one table rendered).
type Session struct {
	cfg     taskconfig.SessionConfig
	log     *log.Logger
	lnch    *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
}

// NewSession creates a session for one nutrient category. Call Start to
// launch the browser.
func NewSession(cfg taskconfig.SessionConfig, logger *log.Logger) *Session {
	return &Session{cfg: cfg, log: logger}
}

// Start launches Chrome on the configured debugging port, opens a stealth
// page and navigates to the dashboard.
func (s *Session) Start() error {
	l := launcher.New().
		Set("remote-debugging-port", strconv.Itoa(s.cfg.Port)).
		Set("disable-blink-features", "AutomationControlled")

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	s.lnch = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.browser = browser

	page, err := stealth.Page(browser)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	s.page = page

	if err := page.Navigate(s.cfg.URL); err != nil {
		return fmt.Errorf("failed to navigate to dashboard: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		s.log.Warn("⭕ Page did not load fully", "url", s.cfg.URL, "error", err)
	}
	return nil
}

// SelectNutrientView clicks the table-view toggle for this session's
// nutrient category. Nothing downstream works without it, so failure here
// is fatal for the session.
func (s *Session) SelectNutrientView() error {
	xpath := fmt.Sprintf("//button[contains(text(), '%s(Table View)')]", s.cfg.Nutrient)
	button, err := s.page.Timeout(uiTimeout).ElementX(xpath)
	if err != nil {
		return fmt.Errorf("nutrient view toggle not found: %w", err)
	}
	s.safeClick(button)
	time.Sleep(2 * time.Second)
	return nil
}

// Reset reloads the page and re-establishes the nutrient view. A stuck UI
// usually needs this rather than another click.
func (s *Session) Reset() bool {
	if err := s.page.Reload(); err != nil {
		s.log.Warn("⚠️ Page reset failed", "error", err)
		return false
	}
	time.Sleep(3 * time.Second)
	if err := s.SelectNutrientView(); err != nil {
		s.log.Warn("⚠️ Page reset failed", "error", err)
		return false
	}
	return true
}

// Close shuts the browser down. Safe to call after a partial Start.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warn("⭕ Browser close failed", "error", err)
		}
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
}

// clickBody issues a neutral click used to close any open dropdown.
func (s *Session) clickBody() {
	body, err := s.page.Timeout(uiTimeout).Element("body")
	if err != nil {
		return
	}
	_ = body.Click(proto.InputMouseButtonLeft, 1)
	time.Sleep(500 * time.Millisecond)
}

// safeClick clicks an element, falling back to a JS click when the native
// click is rejected (overlays, half-rendered portals).
func (s *Session) safeClick(el *rod.Element) {
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		_, _ = el.Eval(`() => this.click()`)
	}
}
