package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file, applies defaults, then
// SCRIVENER_* environment overrides, and validates the result.
// Environment variables always take precedence over file values.
func Load(path string) (*Config, error) {
	cfg := seeded()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// seeded pre-sets fields whose zero value is meaningful, so that an
// absent key gets the default while an explicit zero survives.
func seeded() *Config {
	cfg := &Config{}
	cfg.Audit.Enabled = true
	cfg.Audit.SQLite.WALMode = true
	cfg.Sanitizer.TOCArtifactThreshold = DefaultTOCArtifactThreshold
	return cfg
}

// applyEnvOverrides applies SCRIVENER_SECTION_FIELD environment
// variables over the loaded configuration. Malformed values are
// ignored; the file value stands.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SCRIVENER_LIBRARY_DIR"); val != "" {
		cfg.Library.Dir = val
	}
	if val := os.Getenv("SCRIVENER_LIBRARY_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Library.Watch = b
		}
	}
	if val := os.Getenv("SCRIVENER_LIBRARY_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Library.DebounceInterval = d
		}
	}

	if val := os.Getenv("SCRIVENER_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("SCRIVENER_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("SCRIVENER_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLite.Path = val
	}
	if val := os.Getenv("SCRIVENER_AUDIT_RETENTION_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Retention.Enabled = b
		}
	}
	if val := os.Getenv("SCRIVENER_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.Days = i
		}
	}
	if val := os.Getenv("SCRIVENER_AUDIT_RETENTION_SCHEDULE"); val != "" {
		cfg.Audit.Retention.Schedule = val
	}
	if val := os.Getenv("SCRIVENER_AUDIT_RETENTION_MAX_BUNDLES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.MaxBundles = i
		}
	}

	if val := os.Getenv("SCRIVENER_SANITIZER_TOC_ARTIFACT_THRESHOLD"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Sanitizer.TOCArtifactThreshold = i
		}
	}
	if val := os.Getenv("SCRIVENER_TEMPLATE_MAX_DEPTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Template.MaxDepth = i
		}
	}

	if val := os.Getenv("SCRIVENER_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SCRIVENER_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SCRIVENER_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SCRIVENER_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("SCRIVENER_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
