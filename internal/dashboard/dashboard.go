// Package dashboard loads every selected scenario and assembles the four
// comparison views.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/chart"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/selection"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoUsableInput is returned when nothing could be charted.
var ErrNoUsableInput = selection.ErrNoUsableInput

// Title heads the dashboard page.
const Title = "Market-Feasible Units Dashboard"

// View keys in display order.
const (
	TotalsView  = "totals"
	IncomeView  = "income"
	BedroomView = "bedroom"
	ParkingView = "parking"
)

// Dashboard is the result of one rendering pass.
type Dashboard struct {
	PassID   string             `json:"passId"`
	Title    string             `json:"title"`
	Records  []*scenario.Record `json:"records"`
	Views    []View             `json:"views"`
	Notices  []string           `json:"notices,omitempty"`
	Duration time.Duration      `json:"-"`
}

// View is one chart with the table of values behind it.
type View struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	TableTitle string       `json:"tableTitle"`
	Figure     chart.Figure `json:"figure"`
	Table      Table        `json:"table"`
}

// View returns the view with the given key.
func (d *Dashboard) View(key string) (View, bool) {
	for _, v := range d.Views {
		if v.Key == key {
			return v, true
		}
	}
	return View{}, false
}

// Palettes groups the colour tables injected into the chart assemblers.
type Palettes struct {
	Total   string
	Income  chart.Palette
	Bedroom chart.Palette
	Parking chart.Palette
}

// DefaultPalettes returns the stock colours.
func DefaultPalettes() Palettes {
	return Palettes{
		Total:   chart.TotalUnitsColor,
		Income:  chart.IncomePalette(),
		Bedroom: chart.BedroomPalette(),
		Parking: chart.ParkingPalette(),
	}
}

func (p Palettes) forGroup(key string) chart.Palette {
	switch key {
	case scenario.BedroomKey:
		return p.Bedroom
	case scenario.ParkingKey:
		return p.Parking
	}
	return p.Income
}

// Builder runs rendering passes.
type Builder struct {
	Loader   *scenario.Loader
	Palettes Palettes
	// Parallel loads sources concurrently; results keep the order sources
	// were given in.
	Parallel bool
	Logger   *zap.Logger
}

// NewBuilder constructs a Builder with the default palettes.
func NewBuilder(logger *zap.Logger, loader *scenario.Loader) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loader == nil {
		loader = scenario.NewLoader(logger, nil, nil)
	}
	return &Builder{
		Loader:   loader,
		Palettes: DefaultPalettes(),
		Logger:   logger,
	}
}

// Build loads sources in the given order and assembles the dashboard.
// Sources that fail to load are logged, listed in Notices, passed to
// reporter when it is non-nil, and left out. If none load, ErrNoUsableInput
// is returned and no views are built.
func (b *Builder) Build(ctx context.Context, sources []scenario.Source, reporter scenario.Reporter) (*Dashboard, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	passID := uuid.NewString()
	logger = logger.With(zap.String("pass", passID))

	if len(sources) == 0 {
		logger.Warn("no scenario sources selected", zap.String("op", "dashboard.Build"))
		return nil, ErrNoUsableInput
	}

	collector := &scenario.Collector{}
	loader := b.Loader
	if loader == nil {
		loader = scenario.NewLoader(logger, nil, nil)
	}
	loader = loader.WithReporter(scenario.Tee(scenario.LogReporter{Logger: logger}, collector, reporter))

	loaded := b.loadAll(ctx, loader, sources)
	records := make([]*scenario.Record, 0, len(loaded))
	for _, rec := range loaded {
		if rec != nil {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		logger.Error("failed to load any data",
			zap.String("op", "dashboard.Build"),
			zap.Int("sources", len(sources)),
		)
		return nil, fmt.Errorf("failed to load any data: %w", ErrNoUsableInput)
	}

	d := &Dashboard{
		PassID:  passID,
		Title:   Title,
		Records: records,
		Views:   b.views(records),
		Notices: collector.Messages(),
	}
	d.Duration = time.Since(start)

	logger.Info("dashboard built",
		zap.String("op", "dashboard.Build"),
		zap.Int("sources", len(sources)),
		zap.Int("records", len(records)),
		zap.Duration("duration", d.Duration),
	)
	return d, nil
}

// loadAll returns one slot per source, nil where the load failed.
func (b *Builder) loadAll(ctx context.Context, loader *scenario.Loader, sources []scenario.Source) []*scenario.Record {
	loaded := make([]*scenario.Record, len(sources))
	if !b.Parallel {
		for i, src := range sources {
			loaded[i] = loader.Load(ctx, src)
		}
		return loaded
	}

	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			loaded[i] = loader.Load(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return loaded
}

func (b *Builder) views(records []*scenario.Record) []View {
	names := scenario.Names(records)
	totals := chart.TotalsOf(records)

	views := []View{{
		Key:        TotalsView,
		Title:      Title,
		TableTitle: "Feasibility Data",
		Figure:     chart.GroupedTotals(names, totals, b.Palettes.Total),
		Table:      totalsTable(names, totals),
	}}

	for _, bv := range breakdownViews {
		group := bv.group()
		selector, _ := chart.SelectorFor(group.Key)
		views = append(views, View{
			Key:        bv.key,
			Title:      bv.title,
			TableTitle: bv.tableTitle,
			Figure:     chart.StackedBreakdown(records, group.Labels(), selector, b.Palettes.forGroup(group.Key)),
			Table:      breakdownTable(records, group),
		})
	}
	return views
}

var breakdownViews = []struct {
	key        string
	title      string
	tableTitle string
	group      func() scenario.Group
}{
	{IncomeView, "Market-feasible units affordable to different income brackets", "Income Bracket Data", scenario.IncomeGroup},
	{BedroomView, "Market-feasible units by bedroom count", "Bedroom Count Data", scenario.BedroomGroup},
	{ParkingView, "Parking stalls by type", "Parking Data", scenario.ParkingGroup},
}
