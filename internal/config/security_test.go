package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultSecurityConfig(t *testing.T) {
	c := DefaultSecurityConfig()

	require.NoError(t, c.Validate())
	assert.Equal(t, 6, c.GetMinPasswordLength())
	assert.Equal(t, 10, c.GetBcryptCost())
	assert.Equal(t, "JWT_SECRET", c.GetJWTSecretEnv())
	assert.Equal(t, 14*24*time.Hour, c.GetTokenTTL())
	per, burst := c.GetAuthRateLimit()
	assert.Equal(t, []int{10, 5}, []int{per, burst})
}

func TestLoadSecurityConfig_ShippedFile(t *testing.T) {
	c, err := LoadSecurityConfig(filepath.Join("..", "..", "configs", "security.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 12, c.GetBcryptCost())
	assert.Equal(t, 336*time.Hour, c.GetTokenTTL())
}

func TestLoadSecurityConfig_Overlay(t *testing.T) {
	c, err := LoadSecurityConfig(writeYAML(t, `
security:
  password:
    min_length: 8
  jwt:
    secret_env: BLOG_JWT_SECRET
    expiry_hours: 1
  rate_limit:
    burst: 2
`))
	require.NoError(t, err)

	assert.Equal(t, 8, c.GetMinPasswordLength())
	assert.Equal(t, 10, c.GetBcryptCost(), "unset keys keep defaults")
	assert.Equal(t, "BLOG_JWT_SECRET", c.GetJWTSecretEnv())
	assert.Equal(t, time.Hour, c.GetTokenTTL())
	per, burst := c.GetAuthRateLimit()
	assert.Equal(t, 10, per)
	assert.Equal(t, 2, burst)
}

func TestLoadSecurityConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr []string
	}{
		{name: "zero min length", yaml: "security:\n  password:\n    min_length: 0\n", wantErr: []string{"password.min_length must be positive"}},
		{name: "bcrypt cost too high", yaml: "security:\n  password:\n    bcrypt_cost: 40\n", wantErr: []string{"password.bcrypt_cost must be between 4 and 31"}},
		{name: "blank secret env", yaml: "security:\n  jwt:\n    secret_env: \"\"\n", wantErr: []string{"jwt.secret_env is required"}},
		{name: "negative expiry", yaml: "security:\n  jwt:\n    expiry_hours: -1\n", wantErr: []string{"jwt.expiry_hours must be positive"}},
		{
			name:    "all violations reported",
			yaml:    "security:\n  rate_limit:\n    auth_per_minute: 0\n    burst: 0\n",
			wantErr: []string{"rate_limit.auth_per_minute must be positive", "rate_limit.burst must be positive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSecurityConfig(writeYAML(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid security config")
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadSecurityConfig_ReadAndParseErrors(t *testing.T) {
	tests := map[string]struct {
		path    func(t *testing.T) string
		wantErr string
	}{
		"missing file": {
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
			wantErr: "read security config",
		},
		"broken yaml": {
			path:    func(t *testing.T) string { return writeYAML(t, "security: [unclosed") },
			wantErr: "parse security config",
		},
		"unknown key": {
			path:    func(t *testing.T) string { return writeYAML(t, "security:\n  jwt:\n    expiry_hour: 3\n") },
			wantErr: "field expiry_hour not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSecurityConfig(tt.path(t))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
