package scenario

import (
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/mathutil"
)

// Breakdown holds one group's values, rounded to one decimal, and each
// value's whole-number share of the group total.
type Breakdown struct {
	Values []float64 `json:"values"`
	Pct    []int     `json:"pct"`
}

// Record is the normalized view of one scenario's aggregation export. It is
// built once per load and never modified afterwards.
type Record struct {
	Name            string    `json:"scenarioName"`
	Income          Breakdown `json:"income"`
	Bedroom         Breakdown `json:"bedroom"`
	Parking         Breakdown `json:"parking"`
	TotalUnits      float64   `json:"totalUnits"`
	AffordableUnits float64   `json:"affordableUnits"`
}

// Breakdown returns the breakdown for the given group key.
func (r *Record) Breakdown(key string) Breakdown {
	switch key {
	case IncomeKey:
		return r.Income
	case BedroomKey:
		return r.Bedroom
	case ParkingKey:
		return r.Parking
	}
	return Breakdown{}
}

// newBreakdown computes shares from the raw values before rounding them for
// display.
func newBreakdown(raw []float64) Breakdown {
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = mathutil.Round(v)
	}
	return Breakdown{
		Values: values,
		Pct:    mathutil.Shares(raw),
	}
}

// Names returns the scenario names of records in order.
func Names(records []*Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
