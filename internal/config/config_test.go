package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/chart"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file uses defaults",
			configPath: filepath.Join(t.TempDir(), "nonexistent.yaml"),
		},
		{
			name:       "Empty path uses defaults",
			configPath: "",
		},
		{
			name:       "Malformed YAML",
			configPath: writeConfig(t, "sources: [unterminated\n"),
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if !config.Sources.UseDefaults {
				t.Errorf("expected useDefaults to default to true")
			}
			if config.Sources.DefaultUnzoned != constants.DefaultUnzonedURL {
				t.Errorf("DefaultUnzoned = %q", config.Sources.DefaultUnzoned)
			}
			if config.Sources.DefaultZoned != constants.DefaultZonedURL {
				t.Errorf("DefaultZoned = %q", config.Sources.DefaultZoned)
			}
			if config.Output.Format != constants.OutputFormatPretty {
				t.Errorf("Output.Format = %q", config.Output.Format)
			}
			if config.Charts.TotalColor != chart.TotalUnitsColor {
				t.Errorf("Charts.TotalColor = %q", config.Charts.TotalColor)
			}
			if config.Sources.FetchTimeout != 0 {
				t.Errorf("FetchTimeout = %v, expected 0", config.Sources.FetchTimeout)
			}
		})
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: console
output:
  format: csv
sources:
  useDefaults: false
  defaultUnzoned: data/unzoned.csv
  parallel: true
  fetchTimeout: 5s
  maxSize: 2M
charts:
  totalColor: "#000000"
  palettes:
    income:
      "<=50% MFI": "#111111"
    parking:
      Surface: "#222222"
`)

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "debug" || config.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Output.Format = %q", config.Output.Format)
	}
	if config.Sources.UseDefaults {
		t.Errorf("expected useDefaults false")
	}
	if !config.Sources.Parallel {
		t.Errorf("expected parallel true")
	}
	if config.Sources.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v", config.Sources.FetchTimeout)
	}
	size, err := config.MaxSourceSize()
	if err != nil || size != 2*1024*1024 {
		t.Errorf("MaxSourceSize() = %d, %v", size, err)
	}

	palettes, unknown := config.Palettes()
	if len(unknown) != 0 {
		t.Errorf("unexpected unknown labels %v", unknown)
	}
	if palettes.Total != "#000000" {
		t.Errorf("Total = %q", palettes.Total)
	}
	if c := palettes.Income.MustColor("<=50% MFI"); c != "#111111" {
		t.Errorf("income override = %q", c)
	}
	if c := palettes.Parking.MustColor("Surface"); c != "#222222" {
		t.Errorf("parking override = %q", c)
	}
	if c := palettes.Bedroom.MustColor("1 bedroom"); c != chart.BedroomPalette().MustColor("1 bedroom") {
		t.Errorf("bedroom colour changed to %q", c)
	}

	defaults := config.SelectionDefaults()
	if defaults.Enabled || defaults.Unzoned != "data/unzoned.csv" {
		t.Errorf("unexpected selection defaults %+v", defaults)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("FEASIBILITY_SOURCES_USEDEFAULTS", "false")
	t.Setenv("FEASIBILITY_OUTPUT_FORMAT", "json")

	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Sources.UseDefaults {
		t.Errorf("expected environment to disable defaults")
	}
	if config.Output.Format != "json" {
		t.Errorf("Output.Format = %q", config.Output.Format)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Configuration)
		warnings []string
	}{
		{
			name:   "Defaults are clean",
			mutate: func(c *Configuration) {},
		},
		{
			name: "Bad output format",
			mutate: func(c *Configuration) {
				c.Output.Format = "xml"
			},
			warnings: []string{"xml"},
		},
		{
			name: "Unknown palette label",
			mutate: func(c *Configuration) {
				c.Charts.Palettes.Bedroom = map[string]string{"4 bedrooms": "#123456"}
			},
			warnings: []string{"charts.palettes.bedroom.4 bedrooms matches no category"},
		},
		{
			name: "Bad colours",
			mutate: func(c *Configuration) {
				c.Charts.TotalColor = "red"
				c.Charts.Palettes.Income = map[string]string{"<=50% MFI": "#12"}
			},
			warnings: []string{"charts.totalColor", "charts.palettes.income.<=50% MFI"},
		},
		{
			name: "Bad default locator",
			mutate: func(c *Configuration) {
				c.Sources.DefaultZoned = "ftp://example.com/zoned.csv"
			},
			warnings: []string{"sources.defaultZoned"},
		},
		{
			name: "Defaults enabled without locators",
			mutate: func(c *Configuration) {
				c.Sources.DefaultUnzoned = ""
				c.Sources.DefaultZoned = ""
			},
			warnings: []string{"no default locators"},
		},
		{
			name: "Bad size and timeout",
			mutate: func(c *Configuration) {
				c.Sources.MaxSize = "lots"
				c.Sources.FetchTimeout = -time.Second
			},
			warnings: []string{"sources.maxSize", "sources.fetchTimeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration("")
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			tt.mutate(config)

			warnings := config.ValidateConfiguration()
			if len(warnings) != len(tt.warnings) {
				t.Fatalf("ValidateConfiguration() = %v, expected %d warnings", warnings, len(tt.warnings))
			}
			for i, want := range tt.warnings {
				if !strings.Contains(warnings[i], want) {
					t.Errorf("warning %d = %q, expected it to contain %q", i, warnings[i], want)
				}
			}
		})
	}
}

func TestNewBuilder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unzoned.csv")
	if err := os.WriteFile(path, []byte("totalUnitsSum,affordableUnitsSum\n10,2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	config.Sources.Parallel = true
	config.Charts.TotalColor = "#010101"

	builder, err := config.NewBuilder(zap.NewNop())
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if !builder.Parallel || builder.Palettes.Total != "#010101" {
		t.Errorf("builder not configured: parallel=%v total=%q", builder.Parallel, builder.Palettes.Total)
	}

	d, err := builder.Build(context.Background(), []scenario.Source{{Name: "Unzoned", Locator: path}}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(d.Records) != 1 || d.Records[0].TotalUnits != 10 {
		t.Errorf("unexpected records %+v", d.Records)
	}

	config.Sources.MaxSize = "bogus"
	if _, err := config.NewBuilder(zap.NewNop()); err == nil {
		t.Errorf("NewBuilder() expected error for bad max size")
	}
}
