package scenario

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// SourceUnreadableError reports a source that could not be fetched or parsed.
type SourceUnreadableError struct {
	Name    string
	Locator string
	Err     error
}

func (e *SourceUnreadableError) Error() string {
	return fmt.Sprintf("error loading CSV data from %s: %v", e.Locator, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error {
	return e.Err
}

// Reporter receives operator-facing errors.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

// Report implements Reporter.
func (f ReporterFunc) Report(err error) { f(err) }

// LogReporter writes reports to a zap logger.
type LogReporter struct {
	Logger *zap.Logger
}

// Report implements Reporter.
func (l LogReporter) Report(err error) {
	if l.Logger == nil {
		return
	}
	fields := []zap.Field{zap.String("op", "scenario.Report"), zap.Error(err)}
	var unreadable *SourceUnreadableError
	if errors.As(err, &unreadable) {
		fields = append(fields, zap.String("scenario", unreadable.Name))
	}
	l.Logger.Error("scenario source unreadable", fields...)
}

// Collector keeps every report so a surface can list them. Safe for
// concurrent use.
type Collector struct {
	mu   sync.Mutex
	errs []error
}

// Report implements Reporter.
func (c *Collector) Report(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// Errors returns the collected reports in arrival order.
func (c *Collector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Messages returns the collected reports as strings.
func (c *Collector) Messages() []string {
	errs := c.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

// Tee fans each report out to every non-nil reporter.
func Tee(reporters ...Reporter) Reporter {
	var live []Reporter
	for _, r := range reporters {
		if r != nil {
			live = append(live, r)
		}
	}
	return ReporterFunc(func(err error) {
		for _, r := range live {
			r.Report(err)
		}
	})
}
