// Package config loads runtime configuration for the crownstore CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   SQLite database path
//	-b string   store backend (sqlite|redis)
//	-r string   Redis address
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "300s"
// or integer nanoseconds:
//
//	{
//	  "store_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "session_ttl": "168h",
//	  "reset_otp_ttl": "300s",
//	  "log_format": "zap",
//	  "sendgrid_api_key": "SG.xxx"
//	}
//
// This package does not read environment variables; use the JSON file or
// flags.
package config
