package chart

import (
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/format"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/mathutil"
)

// Totals holds the "Total Units" and "Affordable Units" series, one value
// per scenario in chart order.
type Totals struct {
	TotalUnits      []float64
	AffordableUnits []float64
}

// TotalsOf collects the totals series from records.
func TotalsOf(records []*scenario.Record) Totals {
	t := Totals{
		TotalUnits:      make([]float64, len(records)),
		AffordableUnits: make([]float64, len(records)),
	}
	for i, r := range records {
		t.TotalUnits[i] = r.TotalUnits
		t.AffordableUnits[i] = r.AffordableUnits
	}
	return t
}

// GroupedTotals builds side-by-side total and affordable bars per scenario.
//
// Affordable bars that are not positive are drawn at 1% of the largest value
// in either series so they stay visible. Their text stays empty and the
// hover reads the true value from customdata, so the drawn height of such a
// bar is not its value.
func GroupedTotals(names []string, totals Totals, primaryColor string) Figure {
	totalText := make([]string, len(totals.TotalUnits))
	for i, v := range totals.TotalUnits {
		totalText[i] = format.Integer(v)
	}

	maxValue := mathutil.Max(append(append([]float64(nil), totals.TotalUnits...), totals.AffordableUnits...)...)
	minDisplay := maxValue * constants.MinimumBarFraction

	affordableDisplay := make([]float64, len(totals.AffordableUnits))
	affordableText := make([]string, len(totals.AffordableUnits))
	for i, v := range totals.AffordableUnits {
		if v > 0 {
			affordableDisplay[i] = v
			affordableText[i] = format.Integer(v)
		} else {
			affordableDisplay[i] = minDisplay
		}
	}

	boldText := Font{Color: BarTextColor, Size: BarTextSize, Weight: "bold"}

	return Figure{
		Data: []Bar{
			{
				Type:          BarType,
				Name:          scenario.TotalUnitsLabel,
				X:             names,
				Y:             append([]float64(nil), totals.TotalUnits...),
				Marker:        Marker{Color: primaryColor},
				Text:          totalText,
				TextPosition:  TextInside,
				TextFont:      boldText,
				HoverTemplate: scenario.TotalUnitsLabel + ": %{y}<extra></extra>",
			},
			{
				Type:          BarType,
				Name:          scenario.AffordableUnitsLabel,
				X:             names,
				Y:             affordableDisplay,
				Marker:        Marker{Color: AffordableUnitsColor},
				Text:          affordableText,
				TextPosition:  TextInside,
				TextFont:      boldText,
				HoverTemplate: scenario.AffordableUnitsLabel + ": %{customdata}<extra></extra>",
				CustomData:    append([]float64(nil), totals.AffordableUnits...),
			},
		},
		Layout: Layout{
			BarMode: "group",
			Height:  400,
			XAxis:   Axis{TickFont: &Font{Size: AxisTickFontSize}},
			YAxis: Axis{
				ShowGrid:  true,
				GridColor: GridColor,
			},
			Legend: Legend{
				Orientation: "h",
				YAnchor:     "bottom",
				Y:           1.02,
				XAnchor:     "right",
				X:           1,
			},
			ShowLegend:  true,
			PlotBGColor: BackgroundColor,
			Margin:      Margin{L: 50, R: 50, T: 50, B: 50},
		},
	}
}
