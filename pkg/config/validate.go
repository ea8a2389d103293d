package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for values that would fail at
// runtime. It is called by Load after defaults and overrides.
func Validate(cfg *Config) error {
	switch cfg.Audit.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("audit.backend: unknown backend %q (want memory or sqlite)", cfg.Audit.Backend)
	}
	if cfg.Audit.Backend == "sqlite" && cfg.Audit.SQLite.Path == "" {
		return fmt.Errorf("audit.sqlite.path: required for sqlite backend")
	}
	if cfg.Audit.Retention.Days <= 0 {
		return fmt.Errorf("audit.retention.days: must be positive, got %d", cfg.Audit.Retention.Days)
	}
	if cfg.Audit.Retention.MaxBundles < 0 {
		return fmt.Errorf("audit.retention.max_bundles: must not be negative, got %d", cfg.Audit.Retention.MaxBundles)
	}
	if cfg.Audit.Retention.Enabled {
		if _, err := cron.ParseStandard(cfg.Audit.Retention.Schedule); err != nil {
			return fmt.Errorf("audit.retention.schedule: invalid cron expression %q: %w",
				cfg.Audit.Retention.Schedule, err)
		}
	}

	if cfg.Sanitizer.TOCArtifactThreshold < 0 {
		return fmt.Errorf("sanitizer.toc_artifact_threshold: must not be negative, got %d",
			cfg.Sanitizer.TOCArtifactThreshold)
	}
	if cfg.Template.MaxDepth <= 0 {
		return fmt.Errorf("template.max_depth: must be positive, got %d", cfg.Template.MaxDepth)
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level: unknown level %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("telemetry.logging.format: unknown format %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry.metrics.listen_address: required when metrics are enabled")
	}
	return nil
}
