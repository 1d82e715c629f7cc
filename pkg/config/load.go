package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path, applies defaults and
// DOCMATRIX_* environment overrides, and validates the result. A missing
// file yields the default configuration (still subject to overrides).
func Load(path string) (*Config, error) {
	cfg := baseline()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies DOCMATRIX_SECTION_FIELD environment variables
// on top of the file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("DOCMATRIX_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("DOCMATRIX_SERVER_STATIC_DIR"); val != "" {
		cfg.Server.StaticDir = val
	}
	if val := os.Getenv("DOCMATRIX_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("DOCMATRIX_CATALOG_RULES_PATH"); val != "" {
		cfg.Catalog.RulesPath = val
	}
	if val := os.Getenv("DOCMATRIX_CATALOG_TYPES_PATH"); val != "" {
		cfg.Catalog.TypesPath = val
	}
	if val := os.Getenv("DOCMATRIX_CATALOG_NORMAS_PATH"); val != "" {
		cfg.Catalog.NormasPath = val
	}
	if val := os.Getenv("DOCMATRIX_CATALOG_REFRESH_SCHEDULE"); val != "" {
		cfg.Catalog.RefreshSchedule = val
	}
	if val := os.Getenv("DOCMATRIX_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DOCMATRIX_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
