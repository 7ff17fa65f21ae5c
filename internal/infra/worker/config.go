package worker

import (
	"fmt"
	"log/slog"
	"time"

	"blog-api/pkg/config"
)

// WorkerConfig holds the configuration for the maintenance worker.
//
// Environment variables:
//   - WORKER_PURGE_SCHEDULE: cron expression for the expired session purge (default: "0 * * * *")
//   - WORKER_GAUGE_SCHEDULE: cron expression for the article gauge refresh (default: "*/5 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name used by the scheduler (default: "UTC")
//   - WORKER_JOB_TIMEOUT: per-run timeout, 1s..1h (default: 2m)
//   - WORKER_HEALTH_PORT: health and metrics port, 1024..65535 (default: 9091)
type WorkerConfig struct {
	PurgeSchedule string
	GaugeSchedule string
	Timezone      string
	JobTimeout    time.Duration
	HealthPort    int
}

// DefaultConfig returns a WorkerConfig with default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		PurgeSchedule: "0 * * * *",   // hourly
		GaugeSchedule: "*/5 * * * *", // every five minutes
		Timezone:      "UTC",
		JobTimeout:    2 * time.Minute,
		HealthPort:    9091,
	}
}

// Validate checks every field and returns all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.PurgeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("purge schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.GaugeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("gauge schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateJobTimeout(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := validateHealthPort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// Location returns the scheduler timezone, UTC when it cannot be loaded.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validateJobTimeout(d time.Duration) error {
	return config.ValidateDurationRange(d, time.Second, time.Hour)
}

func validateHealthPort(p int) error {
	return config.ValidateIntRange(p, 1024, 65535)
}

// LoadConfigFromEnv loads worker configuration from environment variables.
//
// Invalid values never fail the load: each one falls back to its default,
// logs a warning and is counted in the config fallback metrics. The returned
// configuration is always valid.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	note := func(field string, fellBack bool, warning string) {
		if !fellBack {
			return
		}
		fallbackApplied = true
		metrics.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	purge := config.LoadEnvWithFallback("WORKER_PURGE_SCHEDULE", cfg.PurgeSchedule, config.ParseString, config.ValidateCronSchedule)
	cfg.PurgeSchedule = purge.Value
	note("purge_schedule", purge.FallbackApplied, purge.Warning)

	gauge := config.LoadEnvWithFallback("WORKER_GAUGE_SCHEDULE", cfg.GaugeSchedule, config.ParseString, config.ValidateCronSchedule)
	cfg.GaugeSchedule = gauge.Value
	note("gauge_schedule", gauge.FallbackApplied, gauge.Warning)

	tz := config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ParseString, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	note("timezone", tz.FallbackApplied, tz.Warning)

	timeout := config.LoadEnvWithFallback("WORKER_JOB_TIMEOUT", cfg.JobTimeout, config.ParseDuration, validateJobTimeout)
	cfg.JobTimeout = timeout.Value
	note("job_timeout", timeout.FallbackApplied, timeout.Warning)

	port := config.LoadEnvWithFallback("WORKER_HEALTH_PORT", cfg.HealthPort, config.ParseInt, validateHealthPort)
	cfg.HealthPort = port.Value
	note("health_port", port.FallbackApplied, port.Warning)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordConfigLoad()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
