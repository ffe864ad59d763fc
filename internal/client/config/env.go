package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "BOOKSTORE_"

// dotenvFile is read when present; real environment variables win over it.
var dotenvFile = ".env"

type envConfig struct {
	APIBaseURL          *string        `env:"API_URL"`
	RequestTimeout      *time.Duration `env:"REQUEST_TIMEOUT"`
	DataDir             *string        `env:"DATA_DIR"`
	OnlineCheckInterval *time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	SessionSyncInterval *time.Duration `env:"SESSION_SYNC_INTERVAL"`
	AutoLoginOnRegister *bool          `env:"AUTO_LOGIN_ON_REGISTER"`
	LogLevel            *string        `env:"LOG_LEVEL"`
}

func parseEnv(cfg *Config, dotenv string) error {
	environ := env.ToMap(os.Environ())

	if dotenv != "" {
		vars, err := godotenv.Read(dotenv)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("read %s: %w", dotenv, err)
		default:
			for k, v := range vars {
				if _, set := environ[k]; !set {
					environ[k] = v
				}
			}
		}
	}

	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.DataDir != nil {
		cfg.DataDir = *ec.DataDir
	}
	if ec.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = *ec.OnlineCheckInterval
	}
	if ec.SessionSyncInterval != nil {
		cfg.SessionSyncInterval = *ec.SessionSyncInterval
	}
	if ec.AutoLoginOnRegister != nil {
		cfg.AutoLoginOnRegister = *ec.AutoLoginOnRegister
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
	return nil
}
