package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/config"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/dashboard"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/selection"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/output"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderOptions struct {
	configPath   string
	unzoned      string
	zoned        []string
	noDefaults   bool
	outputFormat string
	logLevel     string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load the selected scenarios once and print the dashboard tables",
		Example: `  feasibility-dashboard render --unzoned-url data/unzoned.csv --zoned-url 1=data/upzone.csv
  feasibility-dashboard render --no-defaults --zoned-url 3=https://example.com/s3.csv --output-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.unzoned, "unzoned-url", "", "locator of the unzoned baseline CSV")
	flags.StringArrayVar(&opts.zoned, "zoned-url", nil, "zoned scenario as N=locator with N in 1..9 (repeatable)")
	flags.BoolVar(&opts.noDefaults, "no-defaults", false, "do not substitute default locators for missing scenarios")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	logWarnings(logger, conf.ValidateConfiguration())

	zoned, err := parseZonedFlags(opts.zoned)
	if err != nil {
		return err
	}

	defaults := conf.SelectionDefaults()
	if opts.noDefaults {
		defaults.Enabled = false
	}

	sources, err := selection.Resolve(selection.Query(opts.unzoned, zoned), defaults)
	if err != nil {
		return usageError(err)
	}

	builder, err := conf.NewBuilder(logger)
	if err != nil {
		return err
	}

	d, err := builder.Build(cmd.Context(), sources, nil)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoUsableInput) {
			return usageError(err)
		}
		return err
	}

	logger.Debug("dashboard rendered",
		zap.String("op", "main.runRender"),
		zap.String("pass", d.PassID),
		zap.String("format", outputFormat),
	)
	return output.Write(cmd.OutOrStdout(), outputFormat, d)
}

// parseZonedFlags turns N=locator pairs into slot assignments. A later
// flag for the same slot wins.
func parseZonedFlags(values []string) (map[int]string, error) {
	zoned := make(map[int]string, len(values))
	for _, v := range values {
		slot, locator, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --zoned-url %q: expected N=locator", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(slot))
		if err != nil {
			return nil, fmt.Errorf("invalid --zoned-url slot %q: %w", slot, err)
		}
		if n < 1 || n > constants.MaxZonedScenarios {
			return nil, fmt.Errorf("invalid --zoned-url slot %d: must be between 1 and %d", n, constants.MaxZonedScenarios)
		}
		zoned[n] = strings.TrimSpace(locator)
	}
	return zoned, nil
}

func usageError(err error) error {
	return fmt.Errorf("%w: provide --unzoned-url and/or --zoned-url N=locator, or enable sources.useDefaults", err)
}
