// Package config loads runtime configuration for the decretos CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-pa string        records endpoint for administrative leave (PA)
//	-fl string        records endpoint for statutory vacation (FL)
//	-emp string       employees roster endpoint
//	-s string         spreadsheet id sent with every request
//	-t string         bearer token
//	-b string         sqlite DSN for the local backup store
//	-i int            online status check interval (seconds)
//	-validate         ask the remote to validate rows on push
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "records_endpoint_pa": "https://api.example/exec/pa",
//	  "records_endpoint_fl": "https://api.example/exec/fl",
//	  "employees_endpoint": "https://api.example/exec/emp",
//	  "sheet_id": "1AbC...",
//	  "bearer_token": "eyJ...",
//	  "backup_dsn": "decretos.db",
//	  "online_check_interval": "3s",
//	  "retry_delay": "30s",
//	  "debounce_window": "900ms",
//	  "request_timeout": "15s",
//	  "validate_push": true
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
