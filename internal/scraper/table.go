package scraper

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// TableRow is the ordered cell texts of one rendered grid row.
type TableRow []string

// Substantive reports whether the row carries actual data: at least one cell
// that is neither "0" nor empty. Rows of all zeros are treated as grid
// placeholders and dropped, which also drops a genuine all-zero reading if
// the survey ever produced one.
func (r TableRow) Substantive() bool {
	for _, cell := range r {
		if cell != "0" && cell != "" {
			return true
		}
	}
	return false
}

// Table reads the result grid of one session.
type Table struct {
	session *Session
	log     *log.Logger
}

func NewTable(session *Session, logger *log.Logger) *Table {
	return &Table{session: session, log: logger}
}

// ReadTable returns the substantive rows currently rendered. An absent or
// unreadable grid yields an empty result, never an error: no data is a
// normal outcome here.
func (t *Table) ReadTable() []TableRow {
	time.Sleep(2 * time.Second)

	scroller, err := t.session.page.Timeout(uiTimeout).Element(".MuiDataGrid-virtualScroller")
	if err != nil {
		t.log.Warn("⚠️ Table grid not found", "error", err)
		return nil
	}
	rows, err := scroller.Elements(".MuiDataGrid-row")
	if err != nil {
		t.log.Warn("⚠️ Table rows not readable", "error", err)
		return nil
	}

	var data []TableRow
	for _, row := range rows {
		cells, err := row.Elements(".MuiDataGrid-cell")
		if err != nil {
			continue
		}
		tableRow := make(TableRow, 0, len(cells))
		for _, cell := range cells {
			text, err := cell.Text()
			if err != nil {
				text = ""
			}
			tableRow = append(tableRow, strings.TrimSpace(text))
		}
		if tableRow.Substantive() {
			data = append(data, tableRow)
		}
	}
	return data
}
