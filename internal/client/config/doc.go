// Package config loads runtime configuration for the PhotoKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the local photo database
//	-v string   path of the encrypted token vault
//	-o string   directory downloads are written into
//	-t string   directory cached thumbnails are written into
//	-i int      auto-backup check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "database_path": "photokeeper.db",
//	  "vault_path": "photokeeper.vault",
//	  "download_dir": "downloads",
//	  "thumbnail_dir": "thumbnails",
//	  "backup_check_interval": "60s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
