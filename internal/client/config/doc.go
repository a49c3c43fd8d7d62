// Package config loads runtime configuration for the ElderCare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config; JSON, or YAML when
//     the file ends in .yaml/.yml.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   storage backend (web|device)
//	-d string   data directory
//	-l string   log level
//	-i int      vitals refresh interval (seconds)
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "backend": "device",
//	  "data_dir": "/home/ann/.config/eldercare",
//	  "web_quota_bytes": 5242880,
//	  "vitals_interval": "3s",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "reminders_enabled": true,
//	  "secure_token": false,
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_bucket": "eldercare",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// Environment variables are not read.
package config
