package config

import "github.com/spf13/pflag"

const (
	flagConfig         = "config"
	flagAPIURL         = "api-url"
	flagTimeout        = "timeout"
	flagDataDir        = "data-dir"
	flagOnlineInterval = "online-interval"
	flagLogLevel       = "log-level"
	flagEphemeral      = "ephemeral"
)

// BindFlags registers the configuration flags on fs. The flag defaults
// are informational only; unset flags never override other sources.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON config file")
	fs.StringP(flagAPIURL, "a", d.APIBaseURL, "base URL of the bookstore service")
	fs.Duration(flagTimeout, d.RequestTimeout, "request timeout")
	fs.String(flagDataDir, d.DataDir, "directory for the local session database")
	fs.Duration(flagOnlineInterval, d.OnlineCheckInterval, "online status check interval")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.Bool(flagEphemeral, false, "keep the session in memory only")
}

// applyFlags copies the flags the user set on fs into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagAPIURL:
			cfg.APIBaseURL, err = fs.GetString(f.Name)
		case flagTimeout:
			cfg.RequestTimeout, err = fs.GetDuration(f.Name)
		case flagDataDir:
			cfg.DataDir, err = fs.GetString(f.Name)
		case flagOnlineInterval:
			cfg.OnlineCheckInterval, err = fs.GetDuration(f.Name)
		case flagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case flagEphemeral:
			cfg.Ephemeral, err = fs.GetBool(f.Name)
		}
	})
	return err
}
