// internal/config/config.go
//
// Process configuration read once from the environment at startup.
// main loads .env (godotenv) before calling Load, so values may come from
// either place. The returned Config is treated as immutable and handed to
// the components that need it; nothing else reads the environment.
//
// Environment variables:
//   PORT            listen port (default 8080)
//   CLIENT_ORIGIN   allowed CORS origin (default http://localhost:5173)
//   LOG_LEVEL       zerolog level (default info)
//   LOG_FORMAT      json | console (default json)
//   LOG_FILE        optional rotated log file
//   DB_DRIVER       sqlite3 | postgres | memory (default sqlite3)
//   DB_DSN          data source (default ./data/ecommerce.db)
//   JWT_SECRET      HMAC key, required, at least 32 bytes
//   JWT_EXPIRATION  token lifetime as a Go duration (default 240h)
//   AUTH_HEADER     token header (default Authorization)
//   TOKEN_PREFIX    token scheme label (default "Bearer ")
//   LOGIN_PATH      login endpoint (default /login)

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/ecommerce-api/internal/security"
)

// ErrConfiguration marks a missing or invalid setting. It is fatal at startup.
var ErrConfiguration = errors.New("invalid configuration")

// MinSecretLength is the shortest JWT_SECRET accepted.
const MinSecretLength = 32

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Log      Log
	Database Database
	Security security.Config
}

// Server holds HTTP listener settings.
type Server struct {
	Port         int
	ClientOrigin string
}

// Addr is the listen address derived from Port.
func (s Server) Addr() string { return ":" + strconv.Itoa(s.Port) }

// Log holds logger settings.
type Log struct {
	Level  string
	Format string
	File   string
}

// Database selects the store implementation.
type Database struct {
	Driver string
	DSN    string
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	port, err := strconv.Atoi(env("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("%w: PORT %q", ErrConfiguration, getenv("PORT"))
	}

	cfg := Config{
		Server: Server{
			Port:         port,
			ClientOrigin: env("CLIENT_ORIGIN", "http://localhost:5173"),
		},
		Log: Log{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "json"),
			File:   getenv("LOG_FILE"),
		},
		Database: Database{
			Driver: env("DB_DRIVER", DriverSQLite),
			DSN:    env("DB_DSN", "./data/ecommerce.db"),
		},
		Security: security.Config{
			Secret:      getenv("JWT_SECRET"),
			Expiration:  security.DefaultExpiration,
			HeaderName:  env("AUTH_HEADER", security.DefaultHeaderName),
			TokenPrefix: env("TOKEN_PREFIX", security.DefaultTokenPrefix),
			LoginPath:   env("LOGIN_PATH", security.DefaultLoginPath),
		},
	}

	if v := getenv("JWT_EXPIRATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: JWT_EXPIRATION: %w", ErrConfiguration, err)
		}
		cfg.Security.Expiration = d
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	sec := c.Security
	switch {
	case sec.Secret == "":
		return fmt.Errorf("%w: JWT_SECRET is not set", ErrConfiguration)
	case len(sec.Secret) < MinSecretLength:
		return fmt.Errorf("%w: JWT_SECRET must be at least %d bytes", ErrConfiguration, MinSecretLength)
	case sec.Expiration <= 0:
		return fmt.Errorf("%w: JWT_EXPIRATION must be positive", ErrConfiguration)
	case sec.HeaderName == "":
		return fmt.Errorf("%w: AUTH_HEADER is empty", ErrConfiguration)
	case sec.LoginPath == "" || sec.LoginPath[0] != '/':
		return fmt.Errorf("%w: LOGIN_PATH must start with /", ErrConfiguration)
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown DB_DRIVER %q", ErrConfiguration, c.Database.Driver)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrConfiguration, c.Log.Format)
	}
	return nil
}
