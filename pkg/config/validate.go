package config

import (
	"fmt"
	"net"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"json": true, "text": true}

// Validate checks the configuration for values that would fail at
// startup.
func Validate(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.Server.ListenAddress); err != nil {
		return fmt.Errorf("server.listen_address %q is not host:port: %w", cfg.Server.ListenAddress, err)
	}

	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	if cfg.Catalog.RulesPath == "" {
		return fmt.Errorf("catalog.rules_path must not be empty")
	}
	if cfg.Catalog.TypesPath == "" {
		return fmt.Errorf("catalog.types_path must not be empty")
	}

	level := strings.ToLower(cfg.Telemetry.Logging.Level)
	if !validLogLevels[level] {
		return fmt.Errorf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level)
	}
	format := strings.ToLower(cfg.Telemetry.Logging.Format)
	if !validLogFormats[format] {
		return fmt.Errorf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path %q must start with /", cfg.Telemetry.Metrics.Path)
	}

	return nil
}
