package chart

import (
	"fmt"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/format"
)

// Selector picks the percentage array a stacked chart displays.
type Selector func(r *scenario.Record) []int

// Selectors for the three breakdowns.
var (
	IncomePct  Selector = func(r *scenario.Record) []int { return r.Income.Pct }
	BedroomPct Selector = func(r *scenario.Record) []int { return r.Bedroom.Pct }
	ParkingPct Selector = func(r *scenario.Record) []int { return r.Parking.Pct }
)

// SelectorFor returns the selector of a breakdown group key.
func SelectorFor(key string) (Selector, bool) {
	switch key {
	case scenario.IncomeKey:
		return IncomePct, true
	case scenario.BedroomKey:
		return BedroomPct, true
	case scenario.ParkingKey:
		return ParkingPct, true
	}
	return nil, false
}

// StackedBreakdown builds one stacked bar per scenario, one segment per
// category. Segment heights are the records' percentages exactly as loaded,
// so columns may stack to 99 or 101. Every category must be in palette.
func StackedBreakdown(records []*scenario.Record, categories []string, selector Selector, palette Palette) Figure {
	names := scenario.Names(records)

	traces := make([]Bar, 0, len(categories))
	for i, category := range categories {
		values := make([]float64, len(records))
		text := make([]string, len(records))
		for j, r := range records {
			v := selector(r)[i]
			values[j] = float64(v)
			if v > 0 {
				text[j] = format.Percent(v)
			}
		}

		traces = append(traces, Bar{
			Type:          BarType,
			Name:          category,
			X:             names,
			Y:             values,
			Marker:        Marker{Color: palette.MustColor(category)},
			Text:          text,
			TextPosition:  TextInside,
			TextFont:      Font{Color: BarTextColor, Size: BarTextSize},
			HoverTemplate: fmt.Sprintf("%s: %%{y}%%<extra></extra>", category),
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Height:  600,
			XAxis:   Axis{TickFont: &Font{Size: AxisTickFontSize}},
			YAxis: Axis{
				ShowTickLabels: boolPtr(false),
				ShowGrid:       true,
				GridColor:      GridColor,
			},
			Legend: Legend{
				Orientation: "v",
				YAnchor:     "top",
				Y:           1,
				XAnchor:     "left",
				X:           -0.15,
				Font:        &Font{Size: 12},
				TraceOrder:  "normal",
			},
			ShowLegend:  true,
			PlotBGColor: BackgroundColor,
			Margin:      Margin{L: 0, R: 20, T: 30, B: 30},
		},
	}
}
