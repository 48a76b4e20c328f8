package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(map[string]string{"JWT_SECRET": secret}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./data/ecommerce.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	sec := cfg.Security
	assert.Equal(t, secret, sec.Secret)
	assert.Equal(t, 240*time.Hour, sec.Expiration)
	assert.Equal(t, "Authorization", sec.HeaderName)
	assert.Equal(t, "Bearer ", sec.TokenPrefix)
	assert.Equal(t, "/login", sec.LoginPath)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envOf(map[string]string{
		"JWT_SECRET":     secret,
		"JWT_EXPIRATION": "15m",
		"AUTH_HEADER":    "X-Auth",
		"TOKEN_PREFIX":   "Token ",
		"LOGIN_PATH":     "/api/login",
		"PORT":           "9000",
		"DB_DRIVER":      "memory",
		"LOG_FORMAT":     "console",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr())
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Security.Expiration)
	assert.Equal(t, "X-Auth", cfg.Security.HeaderName)
	assert.Equal(t, "Token ", cfg.Security.TokenPrefix)
	assert.Equal(t, "/api/login", cfg.Security.LoginPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad duration", map[string]string{"JWT_SECRET": secret, "JWT_EXPIRATION": "ten days"}},
		{"zero duration", map[string]string{"JWT_SECRET": secret, "JWT_EXPIRATION": "0s"}},
		{"negative duration", map[string]string{"JWT_SECRET": secret, "JWT_EXPIRATION": "-1h"}},
		{"bad port", map[string]string{"JWT_SECRET": secret, "PORT": "http"}},
		{"unknown driver", map[string]string{"JWT_SECRET": secret, "DB_DRIVER": "mysql"}},
		{"relative login path", map[string]string{"JWT_SECRET": secret, "LOGIN_PATH": "login"}},
		{"unknown log format", map[string]string{"JWT_SECRET": secret, "LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(envOf(tt.env))
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}
