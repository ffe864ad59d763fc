package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields let a file set only some values; intervals use timex.Duration
// so they can be "3s" strings or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DataDir             *string         `json:"data_dir"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SessionSyncInterval *timex.Duration `json:"session_sync_interval"`
	AutoLoginOnRegister *bool           `json:"auto_login_on_register"`
	LogLevel            *string         `json:"log_level"`
}

// parseJSON overlays cfg with the values present in the file at path.
// An empty path loads nothing.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SessionSyncInterval != nil {
		cfg.SessionSyncInterval = jc.SessionSyncInterval.Duration
	}
	if jc.AutoLoginOnRegister != nil {
		cfg.AutoLoginOnRegister = *jc.AutoLoginOnRegister
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
