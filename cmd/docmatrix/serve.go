package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"fincheck/docmatrix/pkg/manager"
	"fincheck/docmatrix/pkg/server"
	"fincheck/docmatrix/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checklist frontend and API",
	Long: `Start the docmatrix HTTP server.

The server loads the catalog files once at startup, watches them for
changes, and serves the static frontend plus the evaluation API.

Examples:
  # Start with default config
  docmatrix serve

  # Start with custom config
  docmatrix serve --config /etc/docmatrix/config.yaml

  # Override listen address
  docmatrix serve --listen 0.0.0.0:3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	logger := newLogger(cfg.Telemetry.Logging)

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, prometheus.NewRegistry())
	}

	catalogs := manager.New(cfg.Catalog, logger, collector)
	if err := catalogs.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := catalogs.Start(ctx); err != nil {
		return err
	}

	srv := server.New(cfg, catalogs, collector, logger)
	return srv.Start(ctx)
}
