// Package config assembles the service configuration from an optional
// YAML file overlaid with environment variables. Environment wins, so a
// deployment can ship a config file and still override single values.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults mirrored from the original deployment.
const (
	DefaultPort       = "5000"
	DefaultLedgerPath = "static/tokens.json"
	DefaultEventsDB   = "data/events.db"
	DefaultMaxUpload  = 200 << 20 // 200 MiB combined upload cap
	DefaultDemoUser   = "vishal"
	DefaultDemoPass   = "1234"
)

// Config is the full service configuration.
type Config struct {
	Port          string `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	LogLevel      string `yaml:"log_level"`

	LedgerBackend string `yaml:"ledger_backend"` // "file" or "sqlite"
	LedgerPath    string `yaml:"ledger_path"`    // JSON file or sqlite db path
	EventsDB      string `yaml:"events_db"`      // "" disables event logging

	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	DemoUser string `yaml:"demo_user"`
	DemoPass string `yaml:"demo_pass"`
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), then applies environment overrides and
// defaults. It errors only on an unreadable or malformed file, or a
// missing session secret.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No file is fine; env and defaults carry the config.
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.Port = env("PORT", cfg.Port)
	cfg.SessionSecret = env("SESSION_SECRET", cfg.SessionSecret)
	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)
	cfg.LedgerBackend = env("LEDGER_BACKEND", cfg.LedgerBackend)
	cfg.LedgerPath = env("LEDGER_PATH", cfg.LedgerPath)
	cfg.EventsDB = env("EVENTS_DB", cfg.EventsDB)
	cfg.DemoUser = env("DEMO_USER", cfg.DemoUser)
	cfg.DemoPass = env("DEMO_PASS", cfg.DemoPass)

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	cfg.applyDefaults()

	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET is required")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LedgerBackend == "" {
		c.LedgerBackend = "file"
	}
	if c.LedgerPath == "" {
		if c.LedgerBackend == "sqlite" {
			c.LedgerPath = "data/ledger.db"
		} else {
			c.LedgerPath = DefaultLedgerPath
		}
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUpload
	}
	if c.DemoUser == "" {
		c.DemoUser = DefaultDemoUser
	}
	if c.DemoPass == "" {
		c.DemoPass = DefaultDemoPass
	}
}

// SecretBytes derives the 32-byte JWT signing secret from the
// configured session secret via SHA-256.
func (c *Config) SecretBytes() []byte {
	sum := sha256.Sum256([]byte(c.SessionSecret))
	return sum[:]
}

func env(key, current string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return current
}
