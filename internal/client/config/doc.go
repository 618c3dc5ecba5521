// Package config loads runtime configuration for the KONGENGA CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file in the working directory, then KONGENGA_*
//     variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the KONGENGA API
//	-d string   local data directory
//	-t int      request timeout (seconds)
//	-l string   message language (fr, ln, sw, en, kg)
//
// Environment
//
//	KONGENGA_SERVER_URL, KONGENGA_DATA_DIR, KONGENGA_REQUEST_TIMEOUT ("10s"),
//	KONGENGA_LANGUAGE
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds. Empty values are
// ignored:
//
//	{
//	  "server_url": "https://api.kongenga.cd",
//	  "data_dir": "/home/amina/.kongenga",
//	  "request_timeout": "10s",
//	  "language": "ln"
//	}
package config
