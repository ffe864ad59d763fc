package config

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/bookstore/internal/filex"
)

const appName = "bookstore"

// Config holds runtime settings for the bookstore CLI.
//
// Units: all intervals and timeouts are time.Duration values.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	DataDir             string
	OnlineCheckInterval time.Duration
	SessionSyncInterval time.Duration
	AutoLoginOnRegister bool
	LogLevel            string
	Ephemeral           bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.RequestTimeout = 30 * time.Second
	c.DataDir = filex.DefaultDataDir(appName)
	c.OnlineCheckInterval = 30 * time.Second
	c.SessionSyncInterval = 2 * time.Second
	c.AutoLoginOnRegister = false
	c.LogLevel = "warn"
	c.Ephemeral = false
}

// Load builds a Config from defaults, then the JSON file named by the
// --config flag, then .env and BOOKSTORE_* variables, then the flags the
// user actually set on fs. Later sources take precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, _ := fs.GetString(flagConfig)
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotenvFile); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}
