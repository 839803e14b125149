package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

var (
	backends    = []string{BackendMemory, BackendSQLite, BackendPostgres, BackendRedis, BackendS3}
	hashSchemes = []string{"sha256", "argon2id"}
	logFormats  = []string{"text", "json", "zap"}
)

// Config holds runtime settings for the memories CLI.
type Config struct {
	Backend string

	SQLitePath  string
	DatabaseDSN string

	RedisAddr     string
	RedisDB       int
	RedisPassword string
	RedisPrefix   string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3RootUser     string
	S3RootPassword string
	S3Prefix       string

	// MemoryQuotaBytes caps the memory backend; 0 disables the cap.
	MemoryQuotaBytes int

	HashScheme string

	// SessionSecret switches session persistence to signed tokens.
	SessionSecret string
	SessionTTL    time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = BackendSQLite
	c.SQLitePath = "memories.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "memories:"
	c.S3Region = "us-east-1"
	c.S3Prefix = "memories"
	c.MemoryQuotaBytes = 5 * 1024 * 1024
	c.HashScheme = "sha256"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config from defaults, the JSON file, the
// environment and args (without the program name), in that order. Malformed
// input panics, as the CLI cannot start without a usable configuration.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("unknown backend %q, want one of %s", c.Backend, strings.Join(backends, ", "))
	}
	if !slices.Contains(hashSchemes, c.HashScheme) {
		return fmt.Errorf("unknown hash scheme %q, want one of %s", c.HashScheme, strings.Join(hashSchemes, ", "))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("unknown log format %q, want one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}

	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite backend needs a database path")
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("postgres backend needs a DSN")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis backend needs an address")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 backend needs a bucket")
		}
	}
	return nil
}

// String renders the configuration with secrets masked.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "backend=%s", c.Backend)
	switch c.Backend {
	case BackendSQLite:
		fmt.Fprintf(&sb, " sqlite_path=%s", c.SQLitePath)
	case BackendPostgres:
		fmt.Fprintf(&sb, " database_dsn=%s", mask(c.DatabaseDSN))
	case BackendRedis:
		fmt.Fprintf(&sb, " redis_addr=%s redis_db=%d redis_password=%s", c.RedisAddr, c.RedisDB, mask(c.RedisPassword))
	case BackendS3:
		fmt.Fprintf(&sb, " s3_bucket=%s s3_region=%s s3_endpoint=%s s3_root_password=%s",
			c.S3Bucket, c.S3Region, c.S3BaseEndpoint, mask(c.S3RootPassword))
	case BackendMemory:
		fmt.Fprintf(&sb, " memory_quota_bytes=%d", c.MemoryQuotaBytes)
	}
	fmt.Fprintf(&sb, " hash_scheme=%s session_secret=%s session_ttl=%s log_level=%s log_format=%s",
		c.HashScheme, mask(c.SessionSecret), c.SessionTTL, c.LogLevel, c.LogFormat)
	return sb.String()
}

func mask(s string) string {
	if s == "" {
		return "(empty)"
	}
	return "********"
}
