package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "only set flags apply",
			args: []string{"-a", "http://127.0.0.1:9090", "--online-interval", "10s"},
			expected: &Config{
				APIBaseURL:          "http://127.0.0.1:9090",
				OnlineCheckInterval: 10 * time.Second,
				LogLevel:            "keep",
			},
		},
		{
			name:     "ephemeral and log level",
			args:     []string{"--ephemeral", "--log-level=debug", "--data-dir", "/d"},
			expected: &Config{LogLevel: "debug", Ephemeral: true, DataDir: "/d"},
		},
		{name: "incorrect interval", args: []string{"--online-interval", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			BindFlags(fs)

			err := fs.Parse(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg := &Config{LogLevel: "keep"}
			require.NoError(t, applyFlags(cfg, fs))
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
