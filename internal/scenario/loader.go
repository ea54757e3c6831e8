package scenario

import (
	"context"
	"strings"

	"github.com/mapcraftlabs/feasibility-dashboard/pkg/mathutil"
	"go.uber.org/zap"
)

// Source names one aggregation export and the scenario label it loads as.
type Source struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
}

// Loader turns sources into records. Failures are reported, never returned.
type Loader struct {
	logger   *zap.Logger
	opener   Opener
	reporter Reporter
}

// NewLoader constructs a Loader. A nil opener reads sources without a
// timeout or size cap; a nil reporter logs reports through logger.
func NewLoader(logger *zap.Logger, opener Opener, reporter Reporter) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opener == nil {
		opener = NewSourceOpener(0, 0)
	}
	if reporter == nil {
		reporter = LogReporter{Logger: logger}
	}
	return &Loader{logger: logger, opener: opener, reporter: reporter}
}

// WithReporter returns a copy of the loader that sends reports to reporter.
func (l *Loader) WithReporter(reporter Reporter) *Loader {
	clone := *l
	if reporter != nil {
		clone.reporter = reporter
	}
	return &clone
}

// Load reads src and returns its record, or nil when the source could not
// be read or parsed. Each failure is reported exactly once. An empty
// locator yields nil without a report.
func (l *Loader) Load(ctx context.Context, src Source) *Record {
	if strings.TrimSpace(src.Locator) == "" {
		return nil
	}

	rc, err := l.opener.Open(ctx, src.Locator)
	if err != nil {
		l.fail(src, err)
		return nil
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			l.logger.Warn("failed to close source",
				zap.String("op", "scenario.Load"),
				zap.String("scenario", src.Name),
				zap.Error(closeErr),
			)
		}
	}()

	rec, ignored, err := parse(rc, src.Name)
	if err != nil {
		l.fail(src, err)
		return nil
	}
	if ignored > 0 {
		l.logger.Debug("using first row only",
			zap.String("op", "scenario.Load"),
			zap.String("scenario", src.Name),
			zap.Int("ignoredRows", ignored),
		)
	}

	for _, g := range Groups() {
		// Shares are rounded independently and may not add to 100.
		if sum := mathutil.SumInts(rec.Breakdown(g.Key).Pct); sum != 0 && sum != 100 {
			l.logger.Debug("breakdown shares drift from 100",
				zap.String("op", "scenario.Load"),
				zap.String("scenario", src.Name),
				zap.String("group", g.Key),
				zap.Int("sum", sum),
			)
		}
	}

	l.logger.Debug("scenario loaded",
		zap.String("op", "scenario.Load"),
		zap.String("scenario", src.Name),
		zap.Float64("totalUnits", rec.TotalUnits),
		zap.Float64("affordableUnits", rec.AffordableUnits),
	)
	return rec
}

func (l *Loader) fail(src Source, err error) {
	l.reporter.Report(&SourceUnreadableError{
		Name:    src.Name,
		Locator: src.Locator,
		Err:     err,
	})
}
