// Package config loads runtime configuration for the AssetTrack client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. ASSETTRACK_* environment variables.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "server_url": "https://assets.example.com",
//	  "timeout": "15s",
//	  "database_path": "assettrack.db",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "credential_secret": "..."
//	}
//
// Durations accept "15s"-style strings or integer nanoseconds.
//
// # Environment
//
//	ASSETTRACK_SERVER_URL, ASSETTRACK_TIMEOUT, ASSETTRACK_DATABASE_PATH,
//	ASSETTRACK_LOG_FORMAT, ASSETTRACK_LOG_LEVEL, ASSETTRACK_CREDENTIAL_SECRET
package config
