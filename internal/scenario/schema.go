// Package scenario loads single-row aggregation exports into normalized
// scenario records.
package scenario

// Column ties one CSV column of the aggregation export to the category
// label it is displayed under.
type Column struct {
	Name  string
	Label string
}

// Group is an ordered set of columns broken down into percentages
// against each other.
type Group struct {
	Key     string
	Title   string
	Columns []Column
}

// Group keys.
const (
	IncomeKey  = "income"
	BedroomKey = "bedroom"
	ParkingKey = "parking"
)

// Columns holding the scalar totals.
const (
	TotalUnitsColumn      = "totalUnitsSum"
	AffordableUnitsColumn = "affordableUnitsSum"
)

// Labels of the two totals series.
const (
	TotalUnitsLabel      = "Total Units"
	AffordableUnitsLabel = "Affordable Units"
)

var (
	incomeGroup = Group{
		Key:   IncomeKey,
		Title: "Income Bracket",
		Columns: []Column{
			{Name: "marketUnits050Sum", Label: "<=50% MFI"},
			{Name: "marketUnits51100Sum", Label: "51%-100% MFI"},
			{Name: "marketUnits101150Sum", Label: "101-150% MFI"},
			{Name: "marketUnits151200Sum", Label: "151-200% MFI"},
			{Name: "marketUnits201250Sum", Label: "201-250% MFI"},
			{Name: "marketUnits251Sum", Label: ">251% MFI"},
		},
	}

	bedroomGroup = Group{
		Key:   BedroomKey,
		Title: "Bedroom Count",
		Columns: []Column{
			{Name: "countMarket0BrSum", Label: "0 bedrooms"},
			{Name: "countMarket1BrSum", Label: "1 bedroom"},
			{Name: "countMarket2BrSum", Label: "2 bedrooms"},
			{Name: "countMarket3BrSum", Label: "3+ bedrooms"},
		},
	}

	parkingGroup = Group{
		Key:   ParkingKey,
		Title: "Parking",
		Columns: []Column{
			{Name: "surfaceParkingStallsSum", Label: "Surface"},
			{Name: "garageParkingStallsSum", Label: "Garage"},
			{Name: "podiumParkingStallsSum", Label: "Podium"},
			{Name: "structuredParkingStallsSum", Label: "Structured"},
			{Name: "undergroundParkingStallsSum", Label: "Underground"},
		},
	}
)

// IncomeGroup returns the six income-bracket buckets in canonical order.
func IncomeGroup() Group { return incomeGroup.clone() }

// BedroomGroup returns the four bedroom-count buckets in canonical order.
func BedroomGroup() Group { return bedroomGroup.clone() }

// ParkingGroup returns the five parking-type buckets in canonical order.
func ParkingGroup() Group { return parkingGroup.clone() }

// Groups returns every breakdown group in display order.
func Groups() []Group {
	return []Group{IncomeGroup(), BedroomGroup(), ParkingGroup()}
}

// Labels returns the category labels in canonical order.
func (g Group) Labels() []string {
	labels := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		labels[i] = c.Label
	}
	return labels
}

// Names returns the CSV column names in canonical order.
func (g Group) Names() []string {
	names := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		names[i] = c.Name
	}
	return names
}

func (g Group) clone() Group {
	g.Columns = append([]Column(nil), g.Columns...)
	return g
}

// Vocabulary returns every column name the loader reads.
func Vocabulary() []string {
	var names []string
	for _, g := range Groups() {
		names = append(names, g.Names()...)
	}
	return append(names, TotalUnitsColumn, AffordableUnitsColumn)
}
