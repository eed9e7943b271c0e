// Package config loads runtime configuration for the contact directory CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or the
//     CONTACTDIR_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend (default http://127.0.0.1:8080)
//	-t int      request timeout in seconds (default 10)
//	-d int      search debounce in milliseconds (default 350)
//	-o string   download directory (default "download")
//	-l string   log level (default "info")
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. The export section is only available in JSON:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "search_debounce": "350ms",
//	  "download_dir": "download",
//	  "log_level": "info",
//	  "log_format": "console",
//	  "picture_cache_size": 64,
//	  "export": {
//	    "bucket": "contacts",
//	    "region": "us-east-1",
//	    "endpoint": "http://127.0.0.1:9000",
//	    "access_key": "admin",
//	    "secret_key": "secretpassword",
//	    "prefix": "exports/"
//	  }
//	}
package config
