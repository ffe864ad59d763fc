// Package config loads runtime configuration for the bookstore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config or -c.
//  3. A .env file in the working directory, then BOOKSTORE_* environment
//     variables (real variables win over .env entries).
//  4. Command-line flags the user actually set.
//
// Supported flags
//
//	-a, --api-url string         base URL of the bookstore service
//	    --timeout duration       request timeout
//	    --data-dir string        directory for the local session database
//	    --online-interval dur    online status check interval
//	    --log-level string       debug, info, warn or error
//	    --ephemeral              keep the session in memory only
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds. Every key is optional:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "request_timeout": "30s",
//	  "data_dir": "/home/me/.config/bookstore",
//	  "online_check_interval": "30s",
//	  "session_sync_interval": "2s",
//	  "auto_login_on_register": false,
//	  "log_level": "warn"
//	}
//
// # Environment
//
//	BOOKSTORE_API_URL, BOOKSTORE_REQUEST_TIMEOUT, BOOKSTORE_DATA_DIR,
//	BOOKSTORE_ONLINE_CHECK_INTERVAL, BOOKSTORE_SESSION_SYNC_INTERVAL,
//	BOOKSTORE_AUTO_LOGIN_ON_REGISTER, BOOKSTORE_LOG_LEVEL
package config
