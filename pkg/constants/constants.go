// Package constants provides shared constants for the feasibility dashboard.
package constants

// Scenario naming
const (
	// BaselineScenarioName is the label of the unzoned baseline, always charted first.
	BaselineScenarioName = "Unzoned"

	// ScenarioNameFormat names the zoned scenario in a given slot.
	ScenarioNameFormat = "Scenario %d"

	// MaxZonedScenarios is the number of zoned scenario slots.
	MaxZonedScenarios = 9

	// DefaultedZonedSlots is the number of leading zoned slots that fall back to
	// the default zoned locator when no parameter is supplied.
	DefaultedZonedSlots = 2
)

// Request parameter names
const (
	// UnzonedParam selects the baseline locator.
	UnzonedParam = "unzoned_url"

	// ZonedParamFormat selects the locator of zoned slot N.
	ZonedParamFormat = "zoned_url_%d"
)

// Numeric constants
const (
	// DisplayDecimals is the number of decimal places displayed values keep.
	DisplayDecimals = 1

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MinimumBarFraction is the share of the chart maximum used to draw
	// zero-valued affordable bars.
	MinimumBarFraction = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON emits the full dashboard including chart specs.
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of the dashboard configuration.
	EnvPrefix = "FEASIBILITY"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultReadHeaderTimeout bounds how long the server waits for request headers.
	DefaultReadHeaderTimeout = "10s"

	// DefaultMaxSourceSizeBytes caps how much of a single CSV source is read (10 MB).
	DefaultMaxSourceSizeBytes int64 = 10 * 1024 * 1024
)

// Default source locators used when no request parameters are given.
const (
	DefaultUnzonedURL = "https://firebasestorage.googleapis.com/v0/b/mapcraftlabs.appspot.com/o/labs_data%2FStandardCalifornia%2Fsimulations%2F-OgEbfYts3K-dWHr0Shp%2Faggregations%2Ffull_aggregations.csv?alt=media&token=b1fabf4c-9dec-4a55-8136-7bf90585f5d5"
	DefaultZonedURL   = "https://firebasestorage.googleapis.com/v0/b/mapcraftlabs.appspot.com/o/labs_data%2FStandardCalifornia%2Fsimulations%2F-OgEbczgKYktEp6MlRzz%2Faggregations%2Ffull_aggregations.csv?alt=media&token=91f1a256-394e-47cf-a7d1-2b5920bbeba4"
)
