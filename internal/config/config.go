// Package config defines the dashboard configuration and the functions for
// loading it and turning it into a dashboard builder.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/chart"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/dashboard"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/selection"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/format"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for the feasibility dashboard.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Sources SourcesConfig `yaml:"sources,omitempty"`
	Charts  ChartsConfig  `yaml:"charts,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// SourcesConfig controls how scenario sources are selected and read.
type SourcesConfig struct {
	UseDefaults    bool          `yaml:"useDefaults"`
	DefaultUnzoned string        `yaml:"defaultUnzoned,omitempty"`
	DefaultZoned   string        `yaml:"defaultZoned,omitempty"`
	Parallel       bool          `yaml:"parallel,omitempty"`
	FetchTimeout   time.Duration `yaml:"fetchTimeout,omitempty"` // zero waits indefinitely
	MaxSize        string        `yaml:"maxSize,omitempty"`      // e.g. 10M
}

// ChartsConfig overrides chart colours.
type ChartsConfig struct {
	TotalColor string           `yaml:"totalColor,omitempty"`
	Palettes   PaletteOverrides `yaml:"palettes,omitempty"`
}

// PaletteOverrides maps category labels to colours per breakdown.
type PaletteOverrides struct {
	Income  map[string]string `yaml:"income,omitempty"`
	Bedroom map[string]string `yaml:"bedroom,omitempty"`
	Parking map[string]string `yaml:"parking,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("sources.useDefaults", true)
	v.SetDefault("sources.defaultUnzoned", constants.DefaultUnzonedURL)
	v.SetDefault("sources.defaultZoned", constants.DefaultZonedURL)
	v.SetDefault("sources.parallel", false)
	v.SetDefault("sources.fetchTimeout", "0s")
	v.SetDefault("sources.maxSize", fmt.Sprintf("%d", constants.DefaultMaxSourceSizeBytes))
	v.SetDefault("charts.totalColor", chart.TotalUnitsColor)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path or a missing file yields the defaults;
// environment variables prefixed FEASIBILITY_ override either.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// SelectionDefaults returns the locators substituted for missing parameters.
func (c *Configuration) SelectionDefaults() selection.Defaults {
	return selection.Defaults{
		Enabled: c.Sources.UseDefaults,
		Unzoned: strings.TrimSpace(c.Sources.DefaultUnzoned),
		Zoned:   strings.TrimSpace(c.Sources.DefaultZoned),
	}
}

// MaxSourceSize returns the per-source byte cap.
func (c *Configuration) MaxSourceSize() (int64, error) {
	return format.ParseSize(c.Sources.MaxSize, constants.DefaultMaxSourceSizeBytes)
}

// Palettes returns the default palettes with the configured overrides
// applied, plus any override labels that match no category.
func (c *Configuration) Palettes() (dashboard.Palettes, []string) {
	p := dashboard.DefaultPalettes()
	if color := strings.TrimSpace(c.Charts.TotalColor); color != "" {
		p.Total = color
	}

	var unknown []string
	var missing []string
	p.Income, missing = p.Income.With(c.Charts.Palettes.Income)
	unknown = append(unknown, prefixed(scenario.IncomeKey, missing)...)
	p.Bedroom, missing = p.Bedroom.With(c.Charts.Palettes.Bedroom)
	unknown = append(unknown, prefixed(scenario.BedroomKey, missing)...)
	p.Parking, missing = p.Parking.With(c.Charts.Palettes.Parking)
	unknown = append(unknown, prefixed(scenario.ParkingKey, missing)...)
	return p, unknown
}

// NewBuilder wires a dashboard builder from the configuration.
func (c *Configuration) NewBuilder(logger *zap.Logger) (*dashboard.Builder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxSize, err := c.MaxSourceSize()
	if err != nil {
		return nil, err
	}
	if c.Sources.FetchTimeout < 0 {
		return nil, fmt.Errorf("invalid fetch timeout %s", c.Sources.FetchTimeout)
	}

	opener := scenario.NewSourceOpener(c.Sources.FetchTimeout, maxSize)
	builder := dashboard.NewBuilder(logger, scenario.NewLoader(logger, opener, nil))
	builder.Palettes, _ = c.Palettes()
	builder.Parallel = c.Sources.Parallel
	return builder, nil
}

func prefixed(group string, labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = group + "." + l
	}
	return out
}
