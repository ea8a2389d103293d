package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultLibraryDir       = "./library"
	DefaultDebounceInterval = 200 * time.Millisecond

	DefaultAuditBackend = "sqlite"
	DefaultSQLitePath   = "./scrivener-audit.db"
	DefaultMaxOpenConns = 10
	DefaultMaxIdleConns = 5
	DefaultBusyTimeout  = 5 * time.Second

	DefaultRetentionDays = 2190
	DefaultPruneSchedule = "0 3 * * *"

	DefaultTOCArtifactThreshold = 3
	DefaultTemplateMaxDepth     = 32

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultMetricsListenAddress = "127.0.0.1:9190"
	DefaultMetricsPath          = "/metrics"
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults. Fields whose
// zero value is meaningful (Audit.Enabled, SQLite.WALMode, and the
// sanitizer threshold, where 0 means disabled) are seeded by Load
// before unmarshalling instead.
func ApplyDefaults(cfg *Config) {
	if cfg.Library.Dir == "" {
		cfg.Library.Dir = DefaultLibraryDir
	}
	if cfg.Library.DebounceInterval <= 0 {
		cfg.Library.DebounceInterval = DefaultDebounceInterval
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Audit.SQLite.MaxOpenConns <= 0 {
		cfg.Audit.SQLite.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Audit.SQLite.MaxIdleConns <= 0 {
		cfg.Audit.SQLite.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Audit.SQLite.BusyTimeout <= 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultBusyTimeout
	}
	if cfg.Audit.Retention.Days <= 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = DefaultPruneSchedule
	}

	if cfg.Sanitizer.TOCArtifactThreshold < 0 {
		cfg.Sanitizer.TOCArtifactThreshold = DefaultTOCArtifactThreshold
	}
	if cfg.Template.MaxDepth <= 0 {
		cfg.Template.MaxDepth = DefaultTemplateMaxDepth
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
