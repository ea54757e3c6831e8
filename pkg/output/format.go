// Package output provides utilities for formatting and displaying dashboard results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/dashboard"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// Write renders d to w in the named format.
func Write(w io.Writer, format string, d *dashboard.Dashboard) error {
	switch format {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, d)
	case constants.OutputFormatCSV:
		return CsvFormat(w, d)
	case constants.OutputFormatJSON:
		return JSONFormat(w, d)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// PrettyFormat outputs a human-readable table per view. Breakdown cells
// carry the category's share of its scenario in parentheses.
func PrettyFormat(w io.Writer, d *dashboard.Dashboard) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintln(w, titleStyle.Render(d.Title)); err != nil {
		return err
	}
	for _, notice := range d.Notices {
		if _, err := fmt.Fprintf(w, "Notice: %s\n", notice); err != nil {
			return err
		}
	}

	for _, view := range d.Views {
		headers := append([]string{""}, view.Table.Columns...)
		rows := make([][]string, 0, len(view.Table.Rows))
		for i, row := range view.Table.Rows {
			cells := []string{row.Label}
			for j, value := range row.Values {
				cell := p.Sprintf("%.1f", value)
				if pct, ok := share(d.Records, view.Key, i, j); ok {
					cell = p.Sprintf("%s (%d%%)", cell, pct)
				}
				cells = append(cells, cell)
			}
			rows = append(rows, cells)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return labelStyle
				}
				return cellStyle
			})

		if _, err := fmt.Fprintf(w, "\n--- %s ---\n%s\n", view.TableTitle, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// share looks up the rounded percentage behind a breakdown table cell.
func share(records []*scenario.Record, viewKey string, category, column int) (int, bool) {
	if column >= len(records) {
		return 0, false
	}
	b := records[column].Breakdown(viewKey)
	if category >= len(b.Pct) {
		return 0, false
	}
	return b.Pct[category], true
}

// CsvFormat outputs every view table in comma-separated value format, one
// row per category with a column per scenario.
func CsvFormat(w io.Writer, d *dashboard.Dashboard) error {
	cw := csv.NewWriter(w)
	header := append([]string{"view", "category"}, scenario.Names(d.Records)...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, view := range d.Views {
		for _, row := range view.Table.Rows {
			line := []string{view.Key, row.Label}
			for _, value := range row.Values {
				line = append(line, strconv.FormatFloat(value, 'f', -1, 64))
			}
			if err := cw.Write(line); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the dashboard as indented JSON.
func JSONFormat(w io.Writer, d *dashboard.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
