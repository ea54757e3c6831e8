package dashboard

import (
	"github.com/mapcraftlabs/feasibility-dashboard/internal/chart"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
)

// Table is the transposed value grid behind a chart: one row per category,
// one column per scenario. It holds values, never percentages.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Row is one category across every scenario.
type Row struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Value returns the cell for label and column, if present.
func (t Table) Value(label, column string) (float64, bool) {
	col := -1
	for i, c := range t.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, false
	}
	for _, r := range t.Rows {
		if r.Label == label && col < len(r.Values) {
			return r.Values[col], true
		}
	}
	return 0, false
}

func totalsTable(names []string, totals chart.Totals) Table {
	return Table{
		Columns: append([]string(nil), names...),
		Rows: []Row{
			{Label: scenario.TotalUnitsLabel, Values: append([]float64(nil), totals.TotalUnits...)},
			{Label: scenario.AffordableUnitsLabel, Values: append([]float64(nil), totals.AffordableUnits...)},
		},
	}
}

func breakdownTable(records []*scenario.Record, group scenario.Group) Table {
	t := Table{Columns: scenario.Names(records)}
	for i, label := range group.Labels() {
		row := Row{Label: label, Values: make([]float64, len(records))}
		for j, r := range records {
			row.Values[j] = r.Breakdown(group.Key).Values[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
