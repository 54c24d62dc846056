// Package config loads runtime configuration for the StudyHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-d string   path to the local SQLite database file
//	-i int      background session refresh interval (minutes)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15m" or integer nanoseconds:
//
//	{
//	  "server_base_url": "https://studyhub.example.com",
//	  "database_path": "studyhub.db",
//	  "refresh_interval": "15m",
//	  "refresh_timeout": "30s",
//	  "google_client_id": "...",
//	  "google_client_secret": "...",
//	  "oauth_listen_addr": "127.0.0.1:0"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
