package config

import "time"

// Config is the root configuration structure for Scrivener. It covers
// the clause library, audit storage and retention, document generation
// knobs, and telemetry.
type Config struct {
	// Library contains clause library location and hot-reload settings.
	Library LibraryConfig `yaml:"library"`

	// Audit contains audit bundle storage, retention, and export settings.
	Audit AuditConfig `yaml:"audit"`

	// Sanitizer contains content cleanup settings applied to rendered
	// clause text.
	Sanitizer SanitizerConfig `yaml:"sanitizer"`

	// Template contains template rendering limits.
	Template TemplateConfig `yaml:"template"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LibraryConfig locates the clause library and controls hot reload.
type LibraryConfig struct {
	// Dir is the directory containing the library YAML files.
	// Default: "./library"
	Dir string `yaml:"dir"`

	// Watch enables hot reload of the library on file changes.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a file event before a
	// reload fires.
	// Default: 200ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// AuditConfig controls audit bundle storage and retention.
type AuditConfig struct {
	// Enabled turns audit bundle persistence on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains pruning settings.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains settings for the sqlite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "./scrivener-audit.db"
	Path string `yaml:"path"`

	// MaxOpenConns limits concurrent connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns limits idle pooled connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the sqlite busy timeout.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig controls audit bundle pruning.
type RetentionConfig struct {
	// Enabled turns scheduled pruning on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Days is the retention window; bundles older than this are pruned.
	// Default: 2190 (six years, the regulatory record-keeping horizon)
	Days int `yaml:"days"`

	// Schedule is a cron expression for the prune job.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// MaxBundles caps the number of retained bundles; zero means no cap.
	// Default: 0
	MaxBundles int `yaml:"max_bundles"`
}

// SanitizerConfig controls content cleanup of rendered clause text.
type SanitizerConfig struct {
	// TOCArtifactThreshold is the minimum run of trailing page-number
	// fragments treated as a pasted table-of-contents artifact. Zero
	// disables the pass.
	// Default: 3
	TOCArtifactThreshold int `yaml:"toc_artifact_threshold"`
}

// TemplateConfig controls template rendering.
type TemplateConfig struct {
	// MaxDepth bounds nested control structures during rendering.
	// Default: 32
	MaxDepth int `yaml:"max_depth"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics HTTP listen address.
	// Default: "127.0.0.1:9190"
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
