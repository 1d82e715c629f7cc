package config

import "time"

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := baseline()
	ApplyDefaults(cfg)
	return cfg
}

// baseline seeds the boolean fields whose default is true, so a YAML
// unmarshal only flips them when the key is present.
func baseline() *Config {
	cfg := &Config{}
	cfg.Catalog.Watch = true
	cfg.Telemetry.Metrics.Enabled = true
	return cfg
}

// ApplyDefaults fills unset fields with their default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = "127.0.0.1:3000"
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "public"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Catalog.RulesPath == "" {
		cfg.Catalog.RulesPath = "data/rules_matrix.json"
	}
	if cfg.Catalog.TypesPath == "" {
		cfg.Catalog.TypesPath = "data/document_types.json"
	}
	if cfg.Catalog.NormasPath == "" {
		cfg.Catalog.NormasPath = "data/normas.json"
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "text"
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "docmatrix"
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = "/metrics"
	}
}
