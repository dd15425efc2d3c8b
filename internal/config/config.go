// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (development), then
// variables are parsed into Config. Real environment variables win over
// .env entries.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server and CLI.
type Config struct {
	Port      string `env:"PORT" envDefault:"5175"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json | console
	Env       string `env:"NODE_ENV" envDefault:"development"`

	DBPath       string `env:"DB_PATH" envDefault:":memory:"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret         string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays    int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName        string `env:"COOKIE_NAME" envDefault:"vocab_token"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"` // bcrypt; admin login disabled when empty

	DailySalt     string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	MismatchDelay time.Duration `env:"MISMATCH_DELAY" envDefault:"800ms"`
	RevealAfter   time.Duration `env:"DEFINITION_REVEAL_AFTER" envDefault:"10s"`

	CatalogFile  string `env:"VOCAB_CATALOG_FILE"`
	FamiliesFile string `env:"VOCAB_FAMILIES_FILE"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Production reports whether cookies must be Secure/SameSite=None.
func (c Config) Production() bool { return c.Env == "production" }

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
