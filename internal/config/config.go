package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	GinMode         string

	DB DBConfig

	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests need not touch the
// real environment.
func FromEnv(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr:  env("HTTP_ADDR", ""),
		GinMode:   env("GIN_MODE", "release"),
		LogLevel:  strings.ToLower(env("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(env("LOG_FORMAT", "console")),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":" + env("PORT", "8000")
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", env("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, err
	}

	for _, o := range strings.Split(env("CORS_ORIGIN", "http://localhost:3000"), ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return Config{}, fmt.Errorf("invalid CORS_ORIGIN %q: must start with http:// or https://", o)
		}
		cfg.CORSOrigins = append(cfg.CORSOrigins, o)
	}
	if len(cfg.CORSOrigins) == 0 {
		return Config{}, errors.New("CORS_ORIGIN lists no origins")
	}

	cfg.DB.Driver = strings.ToLower(env("DB_DRIVER", DriverPostgres))
	cfg.DB.DSN = env("DATABASE_URL", "")
	switch cfg.DB.Driver {
	case DriverPostgres:
		if cfg.DB.DSN == "" {
			port := env("DB_PORT", "5432")
			if _, err := strconv.Atoi(port); err != nil {
				return Config{}, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
			}
			u := url.URL{
				Scheme: "postgres",
				User:   url.UserPassword(env("DB_USER", "postgres"), getenv("DB_PASSWORD")),
				Host:   env("DB_HOST", "localhost") + ":" + port,
				Path:   "/" + env("DB_NAME", "finance_db"),
			}
			cfg.DB.DSN = u.String()
		}
	case DriverSQLite:
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "finance.db"
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.DB.MaxOpenConns, err = parseInt("DB_MAX_OPEN_CONNS", env("DB_MAX_OPEN_CONNS", "10")); err != nil {
		return Config{}, err
	}
	if cfg.DB.MaxIdleConns, err = parseInt("DB_MAX_IDLE_CONNS", env("DB_MAX_IDLE_CONNS", "5")); err != nil {
		return Config{}, err
	}
	if cfg.DB.ConnMaxLifetime, err = parseDuration("DB_CONN_MAX_LIFETIME", env("DB_CONN_MAX_LIFETIME", "30m")); err != nil {
		return Config{}, err
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("unsupported GIN_MODE %q", cfg.GinMode)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("unsupported LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}
