// Package chart assembles Plotly figures from scenario records. Nothing
// here performs I/O.
package chart

// Figure is a Plotly figure: traces plus layout. It marshals to the JSON
// accepted by Plotly.newPlot.
type Figure struct {
	Data   []Bar  `json:"data"`
	Layout Layout `json:"layout"`
}

// Bar is a Plotly bar trace.
type Bar struct {
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Marker        Marker    `json:"marker"`
	Text          []string  `json:"text"`
	TextPosition  string    `json:"textposition"`
	TextFont      Font      `json:"textfont"`
	HoverTemplate string    `json:"hovertemplate"`
	CustomData    []float64 `json:"customdata,omitempty"`
}

// Marker styles the bars of a trace.
type Marker struct {
	Color string `json:"color"`
}

// Font styles trace or legend text.
type Font struct {
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
}

// Layout holds the figure-wide presentation settings.
type Layout struct {
	BarMode     string `json:"barmode"`
	Height      int    `json:"height"`
	XAxis       Axis   `json:"xaxis"`
	YAxis       Axis   `json:"yaxis"`
	Legend      Legend `json:"legend"`
	ShowLegend  bool   `json:"showlegend"`
	PlotBGColor string `json:"plot_bgcolor"`
	Margin      Margin `json:"margin"`
}

// Axis configures one axis.
type Axis struct {
	Title          string `json:"title"`
	TickFont       *Font  `json:"tickfont,omitempty"`
	ShowTickLabels *bool  `json:"showticklabels,omitempty"`
	ShowGrid       bool   `json:"showgrid"`
	GridColor      string `json:"gridcolor,omitempty"`
}

// Legend positions the legend box.
type Legend struct {
	Title       string  `json:"title"`
	Orientation string  `json:"orientation"`
	XAnchor     string  `json:"xanchor"`
	YAnchor     string  `json:"yanchor"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Font        *Font   `json:"font,omitempty"`
	TraceOrder  string  `json:"traceorder,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Presentation constants shared by both assemblers.
const (
	BarType          = "bar"
	TextInside       = "inside"
	BackgroundColor  = "white"
	GridColor        = "lightgray"
	BarTextColor     = "white"
	BarTextSize      = 14
	AxisTickFontSize = 14
)

func boolPtr(b bool) *bool { return &b }
