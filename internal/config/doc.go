// Package config loads runtime configuration for the memories CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c/-config or MEMORIES_CONFIG.
//  3. Environment variables prefixed with MEMORIES_, optionally from a .env file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-b string   storage backend: memory, sqlite, postgres, redis, s3
//	-p string   SQLite database path
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-k string   session signing secret (enables signed sessions)
//	-t int      session lifetime in minutes, 0 for no expiry
//	-m string   password hash scheme: sha256, argon2id
//	-l string   log level
//	-f string   log format: text, json, zap
//
// # JSON schema
//
// Durations accept strings like "30m" or integer nanoseconds:
//
//	{
//	  "backend": "sqlite",
//	  "sqlite_path": "memories.db",
//	  "session_secret": "change-me",
//	  "session_ttl": "24h",
//	  "log_level": "debug"
//	}
package config
