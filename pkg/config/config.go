package config

import "time"

// Config is the root configuration for docmatrix.
type Config struct {
	// Server contains the HTTP server settings.
	Server ServerConfig `yaml:"server"`

	// Catalog locates the catalog backing files and controls reloading.
	Catalog CatalogConfig `yaml:"catalog"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the "host:port" the server binds to.
	// Default: "127.0.0.1:3000"
	ListenAddress string `yaml:"listen_address"`

	// StaticDir is the directory of static frontend assets. Empty
	// disables static serving.
	// Default: "public"
	StaticDir string `yaml:"static_dir"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CatalogConfig locates the catalog sources and controls reloading.
type CatalogConfig struct {
	// RulesPath is the rule-matrix JSON file.
	// Default: "data/rules_matrix.json"
	RulesPath string `yaml:"rules_path"`

	// TypesPath is the document-type JSON file.
	// Default: "data/document_types.json"
	TypesPath string `yaml:"types_path"`

	// NormasPath is the optional norma JSON file. Empty disables norma
	// references.
	// Default: "data/normas.json"
	NormasPath string `yaml:"normas_path"`

	// Watch reloads the catalog when a backing file changes on disk.
	// Default: true
	Watch bool `yaml:"watch"`

	// RefreshSchedule is an optional cron expression for periodic
	// reloads, useful when the data files live on a share the watcher
	// cannot observe. Empty disables the schedule.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "docmatrix"
	Namespace string `yaml:"namespace"`

	// Path is the scrape endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
