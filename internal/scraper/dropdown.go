package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"soilhealth/internal/lib/retry"
)

const (
	dropdownAttempts = 3
	dropdownBackoff  = 2 * time.Second

	// Items of the currently open MUI select portal.
	listboxXPath     = "//ul[@role='listbox']"
	listboxItemXPath = "//ul[@role='listbox']/li[not(@aria-disabled='true')]"
)

// Dropdowns controls the four cascading selects of one session.
type Dropdowns struct {
	session *Session
	log     *log.Logger
}

func NewDropdowns(session *Session, logger *log.Logger) *Dropdowns {
	return &Dropdowns{session: session, log: logger}
}

// Options opens the dropdown and returns the visible option labels. Texts
// are extracted immediately so no element handle outlives the next render.
// Returns an empty slice after exhausting retries; before the final attempt
// the page is fully reset.
func (d *Dropdowns) Options(dd Dropdown) []string {
	var labels []string

	policy := retry.Policy{
		Attempts:    dropdownAttempts,
		Backoff:     dropdownBackoff,
		Penultimate: func() { d.session.Reset() },
	}

	err := policy.Do(func() error {
		labels = labels[:0]

		if err := d.open(dd); err != nil {
			return err
		}
		if _, err := d.session.page.Timeout(uiTimeout).ElementX(listboxXPath); err != nil {
			return fmt.Errorf("listbox did not appear: %w", err)
		}
		items, err := d.session.page.ElementsX(listboxItemXPath)
		if err != nil {
			return fmt.Errorf("failed to enumerate options: %w", err)
		}

		for _, item := range items {
			text, err := item.Text()
			if err != nil {
				// Stale handle, the portal re-rendered under us.
				continue
			}
			if text = strings.TrimSpace(text); text != "" {
				labels = append(labels, text)
			}
		}

		d.session.clickBody()
		return nil
	})
	if err != nil {
		d.log.Warn("⚠️ Listing dropdown options failed", "dropdown", dd, "error", err)
		return nil
	}
	return labels
}

// Select reopens the dropdown and clicks the option whose normalized text
// equals label. Reports failure instead of returning an error: a failed
// selection is a node-level skip, not a fault.
func (d *Dropdowns) Select(dd Dropdown, label string) bool {
	policy := retry.Policy{
		Attempts: dropdownAttempts,
		Backoff:  dropdownBackoff,
		// Close whatever dropdown a failed attempt left open.
		BetweenTry: func() { d.session.clickBody() },
	}

	err := policy.Do(func() error {
		if err := d.open(dd); err != nil {
			return err
		}
		optionXPath := fmt.Sprintf("//ul[@role='listbox']/li[normalize-space(text())='%s']", label)
		option, err := d.session.page.Timeout(uiTimeout).ElementX(optionXPath)
		if err != nil {
			return fmt.Errorf("option %q not found: %w", label, err)
		}
		d.session.safeClick(option)
		time.Sleep(time.Second)
		return nil
	})
	if err != nil {
		d.log.Warn("⚠️ Dropdown selection failed", "dropdown", dd, "label", label, "error", err)
		return false
	}
	return true
}

func (d *Dropdowns) open(dd Dropdown) error {
	control, err := d.session.page.Timeout(uiTimeout).ElementX(dd.XPath())
	if err != nil {
		return fmt.Errorf("%s dropdown not found: %w", dd, err)
	}
	d.session.safeClick(control)
	time.Sleep(time.Second)
	return nil
}
