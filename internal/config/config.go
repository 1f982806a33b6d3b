// Package config reads server settings from the environment. A .env file
// in the working directory is loaded by the binary before this runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the server reads.
type Config struct {
	Port          string
	Mode          string // gin mode: debug, release or test
	AssetRoot     string // directory served under /logos etc.
	ContentPath   string // empty means the embedded document
	DBPath        string // empty disables visitor tracking and admin
	HashSalt      string // empty means a fresh salt per process
	SessionTTL    time.Duration
	MaxSessions   int
	SweepInterval time.Duration
	AdminUsername string
	AdminPassword string
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:          "8080",
		Mode:          "debug",
		AssetRoot:     "./public",
		DBPath:        "./data/portfolio.db",
		SessionTTL:    30 * time.Minute,
		MaxSessions:   1000,
		SweepInterval: time.Minute,
	}
}

// Load applies environment overrides to the defaults.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is Load with an injectable environment.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("GIN_MODE", &cfg.Mode)
	str("PORTFOLIO_ASSETS", &cfg.AssetRoot)
	str("PORTFOLIO_CONTENT", &cfg.ContentPath)
	str("PORTFOLIO_DB", &cfg.DBPath)
	str("PORTFOLIO_HASH_SALT", &cfg.HashSalt)
	str("ADMIN_USERNAME", &cfg.AdminUsername)
	str("ADMIN_PASSWORD", &cfg.AdminPassword)

	if v, ok := lookup("PORTFOLIO_SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("PORTFOLIO_SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}
	if v, ok := lookup("PORTFOLIO_MAX_SESSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("PORTFOLIO_MAX_SESSIONS: %w", err)
		}
		cfg.MaxSessions = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not a number", c.Port)
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", c.MaxSessions)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// AdminCredentials returns the admin login. Outside release mode, missing
// values fall back to development defaults; in release mode the admin
// surface is disabled unless both are set.
func (c Config) AdminCredentials() (username, password string, enabled bool) {
	username, password = c.AdminUsername, c.AdminPassword
	if c.Mode == "release" {
		return username, password, username != "" && password != ""
	}
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	return username, password, true
}
