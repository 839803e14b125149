package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/memories/internal/flagx"
	"github.com/dmitrijs2005/memories/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides
// what it names.
type JsonConfig struct {
	Backend          *string         `json:"backend"`
	SQLitePath       *string         `json:"sqlite_path"`
	DatabaseDSN      *string         `json:"database_dsn"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisDB          *int            `json:"redis_db"`
	RedisPassword    *string         `json:"redis_password"`
	RedisPrefix      *string         `json:"redis_prefix"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Prefix         *string         `json:"s3_prefix"`
	MemoryQuotaBytes *int            `json:"memory_quota_bytes"`
	HashScheme       *string         `json:"hash_scheme"`
	SessionSecret    *string         `json:"session_secret"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	LogFile          *string         `json:"log_file"`
}

// parseJson overlays cfg with the JSON file named by flagx.ConfigPath.
// No file configured means no changes; read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.SQLitePath, jc.SQLitePath)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setInt(&cfg.RedisDB, jc.RedisDB)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3RootUser, jc.S3RootUser)
	setString(&cfg.S3RootPassword, jc.S3RootPassword)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setInt(&cfg.MemoryQuotaBytes, jc.MemoryQuotaBytes)
	setString(&cfg.HashScheme, jc.HashScheme)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogFile, jc.LogFile)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
