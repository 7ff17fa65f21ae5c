// Package config provides environment variable helpers and value validators
// shared by the api and worker binaries.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the raw value of key, or defaultValue when it is unset or empty.
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// RequireEnv returns the value of an environment variable or an error naming
// the variable when it is unset or blank.
func RequireEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// GetEnvInt reads key as a decimal integer.
//
//	maxOpen := GetEnvInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, ParseInt)
}

// GetEnvBool reads key with strconv.ParseBool; "yes" and "on" are not accepted.
//
//	enabled := GetEnvBool("DB_CIRCUIT_BREAKER_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	})
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	return getEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	})
}

// GetEnvDuration reads key with time.ParseDuration ("30s", "1h30m").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, ParseDuration)
}

// getEnv returns defaultValue when key is unset, and also when it does not
// parse, in which case a warning is logged.
func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", defaultValue),
			slog.Any("error", err))
		return defaultValue
	}
	return v
}

// LoadResult is a value read by LoadEnvWithFallback.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnvWithFallback reads key with parse, validates the result with validate
// (may be nil) and falls back to defaultValue with a warning on failure.
// An unset variable yields the default without a warning.
//
// Example:
//
//	r := LoadEnvWithFallback("WORKER_TIMEZONE", "UTC", ParseString, ValidateTimezone)
//	if r.FallbackApplied {
//	    logger.Warn("configuration fallback applied", slog.String("warning", r.Warning))
//	}
func LoadEnvWithFallback[T any](key string, defaultValue T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := os.Getenv(key)
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: value}
}

// ParseString is the identity parser for LoadEnvWithFallback.
func ParseString(s string) (string, error) { return strings.TrimSpace(s), nil }

// ParseInt parses a decimal integer for LoadEnvWithFallback.
func ParseInt(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) }

// ParseDuration parses a time.Duration for LoadEnvWithFallback.
func ParseDuration(s string) (time.Duration, error) { return time.ParseDuration(strings.TrimSpace(s)) }
