// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: NOTES_* variables, optionally read from a dotenv file
//     given with -env. Real environment variables win over the file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path of the local SQLite database
//	-a string   host:port of the gRPC health endpoint used for online checks
//	-i int      online status check interval (seconds)
//	-r string   remote kind: none, s3 or postgres
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "db_path": "notes.db",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "remote": {"kind": "s3", "timeout": "30s", "s3_bucket": "notes"},
//	  "log": {"format": "json", "level": "debug"}
//	}
package config
