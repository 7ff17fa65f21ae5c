// Package config loads the YAML security settings: password policy, bearer
// token lifetime and sign-in throttling.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type PasswordPolicy struct {
	MinLength  int `yaml:"min_length"`
	BcryptCost int `yaml:"bcrypt_cost"`
}

type TokenPolicy struct {
	// SecretEnv names the environment variable holding the HS256 key.
	SecretEnv   string `yaml:"secret_env"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// AuthThrottle limits sign up and sign in per client IP.
type AuthThrottle struct {
	AuthPerMinute int `yaml:"auth_per_minute"`
	Burst         int `yaml:"burst"`
}

// SecurityConfig mirrors configs/security.yaml.
type SecurityConfig struct {
	Security struct {
		Password  PasswordPolicy `yaml:"password"`
		JWT       TokenPolicy    `yaml:"jwt"`
		RateLimit AuthThrottle   `yaml:"rate_limit"`
	} `yaml:"security"`
}

// DefaultSecurityConfig is used when no file is configured.
func DefaultSecurityConfig() *SecurityConfig {
	c := &SecurityConfig{}
	c.Security.Password = PasswordPolicy{MinLength: 6, BcryptCost: 10}
	c.Security.JWT = TokenPolicy{SecretEnv: "JWT_SECRET", ExpiryHours: 14 * 24}
	c.Security.RateLimit = AuthThrottle{AuthPerMinute: 10, Burst: 5}
	return c
}

// LoadSecurityConfig overlays the file at path onto the defaults. Unknown
// keys are rejected so a typo cannot silently fall back to a default.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- operator supplied path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read security config: %w", err)
	}

	cfg := DefaultSecurityConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse security config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid security config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *SecurityConfig) Validate() error {
	s := c.Security
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	check(s.Password.MinLength > 0, "password.min_length must be positive")
	check(s.Password.BcryptCost >= 4 && s.Password.BcryptCost <= 31, "password.bcrypt_cost must be between 4 and 31")
	check(s.JWT.SecretEnv != "", "jwt.secret_env is required")
	check(s.JWT.ExpiryHours > 0, "jwt.expiry_hours must be positive")
	check(s.RateLimit.AuthPerMinute > 0, "rate_limit.auth_per_minute must be positive")
	check(s.RateLimit.Burst > 0, "rate_limit.burst must be positive")

	return errors.Join(errs...)
}

func (c *SecurityConfig) GetMinPasswordLength() int { return c.Security.Password.MinLength }

func (c *SecurityConfig) GetBcryptCost() int { return c.Security.Password.BcryptCost }

func (c *SecurityConfig) GetJWTSecretEnv() string { return c.Security.JWT.SecretEnv }

// GetTokenTTL is the lifetime of issued bearer tokens.
func (c *SecurityConfig) GetTokenTTL() time.Duration {
	return time.Duration(c.Security.JWT.ExpiryHours) * time.Hour
}

// GetAuthRateLimit returns the sign-in throttle as requests per minute and burst.
func (c *SecurityConfig) GetAuthRateLimit() (perMinute, burst int) {
	return c.Security.RateLimit.AuthPerMinute, c.Security.RateLimit.Burst
}
