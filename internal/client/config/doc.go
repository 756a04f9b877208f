// Package config loads runtime configuration for the tripdiary client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: TRIPDIARY_* variables, with a .env file in the working
//     directory loaded first when present.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags (-a, -i, -d, -u, -l, -w).
//
// # JSON schema
//
// Durations are strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://travel-journal-ai.onrender.com",
//	  "online_check_interval": "3s",
//	  "upload_timeout": "0s",
//	  "database_dsn": "diary.db"
//	}
package config
