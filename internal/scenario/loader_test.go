package scenario

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeSource(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func newTestLoader(opener Opener) (*Loader, *Collector) {
	collector := &Collector{}
	return NewLoader(zap.NewNop(), opener, collector), collector
}

func TestLoadFromPath(t *testing.T) {
	path := writeSource(t, "unzoned.csv", "totalUnitsSum,affordableUnitsSum,marketUnits050Sum,marketUnits51100Sum\n500,50,10,90\n")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Unzoned", Locator: path})

	require.NotNil(t, rec)
	assert.Equal(t, "Unzoned", rec.Name)
	assert.Equal(t, 500.0, rec.TotalUnits)
	assert.Equal(t, 50.0, rec.AffordableUnits)
	assert.Equal(t, []int{10, 90, 0, 0, 0, 0}, rec.Income.Pct)
	assert.Empty(t, collector.Errors())
}

func TestLoadFromFileURL(t *testing.T) {
	path := writeSource(t, "zoned.csv", "totalUnitsSum\n42\n")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Scenario 1", Locator: "file://" + filepath.ToSlash(path)})

	require.NotNil(t, rec)
	assert.Equal(t, 42.0, rec.TotalUnits)
	assert.Empty(t, collector.Errors())
}

func TestLoadMissingColumnsIsNotAFailure(t *testing.T) {
	path := writeSource(t, "other.csv", "regionId\n9\n")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Scenario 3", Locator: path})

	require.NotNil(t, rec)
	assert.Zero(t, rec.TotalUnits)
	assert.Zero(t, rec.AffordableUnits)
	assert.Empty(t, collector.Errors())
}

func TestLoadMissingFileReportsOnce(t *testing.T) {
	locator := filepath.Join(t.TempDir(), "missing.csv")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Unzoned", Locator: locator})

	assert.Nil(t, rec)
	errs := collector.Errors()
	require.Len(t, errs, 1)

	var unreadable *SourceUnreadableError
	require.ErrorAs(t, errs[0], &unreadable)
	assert.Equal(t, "Unzoned", unreadable.Name)
	assert.Equal(t, locator, unreadable.Locator)
	assert.ErrorIs(t, errs[0], fs.ErrNotExist)
	assert.Contains(t, errs[0].Error(), "error loading CSV data from "+locator)
}

func TestLoadUnparseableReportsOnce(t *testing.T) {
	path := writeSource(t, "bad.csv", "totalUnitsSum,affordableUnitsSum\n500,fifty\n")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Scenario 2", Locator: path})

	assert.Nil(t, rec)
	require.Len(t, collector.Errors(), 1)
	assert.Contains(t, collector.Messages()[0], "affordableUnitsSum")
}

func TestLoadEmptyFileReportsOnce(t *testing.T) {
	path := writeSource(t, "empty.csv", "")
	loader, collector := newTestLoader(nil)

	rec := loader.Load(context.Background(), Source{Name: "Scenario 1", Locator: path})

	assert.Nil(t, rec)
	require.Len(t, collector.Errors(), 1)
	assert.ErrorIs(t, collector.Errors()[0], ErrNoColumns)
}

func TestLoadEmptyLocator(t *testing.T) {
	loader, collector := newTestLoader(nil)

	assert.Nil(t, loader.Load(context.Background(), Source{Name: "Unzoned", Locator: "  "}))
	assert.Empty(t, collector.Errors())
}

func TestLoadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/unzoned.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("totalUnitsSum,affordableUnitsSum\n500,50\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader, collector := newTestLoader(NewSourceOpener(0, 0))

	rec := loader.Load(context.Background(), Source{Name: "Unzoned", Locator: srv.URL + "/unzoned.csv"})
	require.NotNil(t, rec)
	assert.Equal(t, 500.0, rec.TotalUnits)
	assert.Empty(t, collector.Errors())

	missing := loader.Load(context.Background(), Source{Name: "Scenario 1", Locator: srv.URL + "/missing.csv"})
	assert.Nil(t, missing)
	require.Len(t, collector.Errors(), 1)
	assert.Contains(t, collector.Messages()[0], "404")
}

func TestLoadSizeLimit(t *testing.T) {
	body := "totalUnitsSum,affordableUnitsSum\n" + strings.Repeat("1,1\n", 100)
	path := writeSource(t, "big.csv", body)

	loader, collector := newTestLoader(NewSourceOpener(0, 64))
	assert.Nil(t, loader.Load(context.Background(), Source{Name: "Unzoned", Locator: path}))
	require.Len(t, collector.Errors(), 1)
	assert.ErrorIs(t, collector.Errors()[0], ErrSourceTooLarge)

	roomy, roomyCollector := newTestLoader(NewSourceOpener(0, int64(len(body))))
	assert.NotNil(t, roomy.Load(context.Background(), Source{Name: "Unzoned", Locator: path}))
	assert.Empty(t, roomyCollector.Errors())
}

func TestLoadCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("totalUnitsSum\n1\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader, collector := newTestLoader(NewSourceOpener(0, 0))
	assert.Nil(t, loader.Load(ctx, Source{Name: "Unzoned", Locator: srv.URL}))
	require.Len(t, collector.Errors(), 1)
	assert.True(t, errors.Is(collector.Errors()[0], context.Canceled))
}

func TestLoadDefaultReporterLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	loader := NewLoader(zap.New(core), nil, nil)

	multi := writeSource(t, "multi.csv", "totalUnitsSum\n1\n2\n")
	require.NotNil(t, loader.Load(context.Background(), Source{Name: "Unzoned", Locator: multi}))
	assert.Equal(t, 1, logs.FilterMessage("using first row only").Len())

	assert.Nil(t, loader.Load(context.Background(), Source{Name: "Scenario 1", Locator: filepath.Join(t.TempDir(), "nope.csv")}))
	failures := logs.FilterMessage("scenario source unreadable").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, "Scenario 1", failures[0].ContextMap()["scenario"])
}

func TestLoadLogsShareDrift(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	loader := NewLoader(zap.New(core), nil, &Collector{})

	path := writeSource(t, "drift.csv", "countMarket0BrSum,countMarket1BrSum,countMarket2BrSum\n1,1,1\n")
	rec := loader.Load(context.Background(), Source{Name: "Unzoned", Locator: path})
	require.NotNil(t, rec)

	drift := logs.FilterMessage("breakdown shares drift from 100").All()
	require.Len(t, drift, 1, "income and parking are all zero and must not be flagged")
	assert.Equal(t, "bedroom", drift[0].ContextMap()["group"])
	assert.EqualValues(t, 99, drift[0].ContextMap()["sum"])
}

func TestWithReporter(t *testing.T) {
	base, baseCollector := newTestLoader(nil)
	other := &Collector{}

	loader := base.WithReporter(other)
	assert.Nil(t, loader.Load(context.Background(), Source{Name: "Unzoned", Locator: filepath.Join(t.TempDir(), "nope.csv")}))

	assert.Len(t, other.Errors(), 1)
	assert.Empty(t, baseCollector.Errors())
}

func TestTee(t *testing.T) {
	first, second := &Collector{}, &Collector{}
	reporter := Tee(first, nil, second)

	reporter.Report(errors.New("boom"))

	assert.Equal(t, []string{"boom"}, first.Messages())
	assert.Equal(t, []string{"boom"}, second.Messages())
}
