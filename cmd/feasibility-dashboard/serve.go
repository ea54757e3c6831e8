package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/config"
	"github.com/mapcraftlabs/feasibility-dashboard/internal/server"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	configPath       string
	serverConfigPath string
	address          string
	logLevel         string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flags.StringVar(&opts.address, "address", "", "listen address override (e.g. :8080)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

// serverLogging prefers the server file's logging block when it sets anything.
func serverLogging(conf *config.Configuration, srv *server.Config) config.LoggingConfig {
	if srv.Logging != (config.LoggingConfig{}) {
		return srv.Logging
	}
	return conf.Logging
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}
	srvCfg, err := server.LoadConfig(opts.serverConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", opts.serverConfigPath, err)
	}
	srvCfg.SetAddress(opts.address)

	logger, err := initializeLogger(serverLogging(conf, srvCfg), opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logWarnings(logger, conf.ValidateConfiguration())

	builder, err := conf.NewBuilder(logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              srvCfg.Address,
		Handler:           server.NewHandler(logger, builder, conf.SelectionDefaults(), version),
		ReadHeaderTimeout: srvCfg.ReadHeaderTimeoutDuration(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("dashboard server listening",
			zap.String("op", "main.runServe"),
			zap.String("address", srvCfg.Address),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down dashboard server", zap.String("op", "main.runServe"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
