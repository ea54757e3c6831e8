package chart

import (
	"fmt"
	"sort"
	"strings"
)

// Default colours for the totals chart.
const (
	TotalUnitsColor      = "#D66E6C"
	AffordableUnitsColor = "#5DBDB4"
)

// Swatch assigns a colour to one category label.
type Swatch struct {
	Label string
	Color string
}

// Palette is an immutable, ordered label→colour table. Build one with
// NewPalette or the constructors below; derive variants with With.
type Palette struct {
	swatches []Swatch
}

// NewPalette copies swatches into a new palette.
func NewPalette(swatches ...Swatch) Palette {
	return Palette{swatches: append([]Swatch(nil), swatches...)}
}

// IncomePalette colours the six income brackets.
func IncomePalette() Palette {
	return NewPalette(
		Swatch{"<=50% MFI", "#5DBDB4"},
		Swatch{"51%-100% MFI", "#F07D4A"},
		Swatch{"101-150% MFI", "#6FB573"},
		Swatch{"151-200% MFI", "#F4C04E"},
		Swatch{"201-250% MFI", "#D66E6C"},
		Swatch{">251% MFI", "#6B9BD1"},
	)
}

// BedroomPalette colours the four bedroom counts.
func BedroomPalette() Palette {
	return NewPalette(
		Swatch{"0 bedrooms", "#6FB573"},
		Swatch{"1 bedroom", "#F4C04E"},
		Swatch{"2 bedrooms", "#D66E6C"},
		Swatch{"3+ bedrooms", "#6B9BD1"},
	)
}

// ParkingPalette colours the five parking types.
func ParkingPalette() Palette {
	return NewPalette(
		Swatch{"Surface", "#6FB573"},
		Swatch{"Garage", "#F4C04E"},
		Swatch{"Podium", "#D66E6C"},
		Swatch{"Structured", "#6B9BD1"},
		Swatch{"Underground", "#5DBDB4"},
	)
}

// Color looks up the colour for label.
func (p Palette) Color(label string) (string, bool) {
	for _, s := range p.swatches {
		if s.Label == label {
			return s.Color, true
		}
	}
	return "", false
}

// MustColor is Color for callers that guarantee coverage; it panics on an
// unmapped label.
func (p Palette) MustColor(label string) string {
	c, ok := p.Color(label)
	if !ok {
		panic(fmt.Sprintf("chart: no colour for category %q", label))
	}
	return c
}

// Labels returns the palette's labels in order.
func (p Palette) Labels() []string {
	labels := make([]string, len(p.swatches))
	for i, s := range p.swatches {
		labels[i] = s.Label
	}
	return labels
}

// Swatches returns a copy of the palette entries.
func (p Palette) Swatches() []Swatch {
	return append([]Swatch(nil), p.swatches...)
}

// With returns a copy of p with colours replaced for the labels named in
// overrides. Labels are matched case-insensitively because configuration
// keys arrive lower-cased. Override keys matching no label are returned.
func (p Palette) With(overrides map[string]string) (Palette, []string) {
	out := p.Swatches()
	var unknown []string
	for key, color := range overrides {
		matched := false
		for i := range out {
			if strings.EqualFold(out[i].Label, key) {
				out[i].Color = color
				matched = true
			}
		}
		if !matched {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return Palette{swatches: out}, unknown
}
