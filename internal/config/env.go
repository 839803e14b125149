package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended (with an underscore) to every environment key.
const EnvPrefix = "MEMORIES"

// dotenvPath is the optional file loaded into the environment before it is read.
var dotenvPath = ".env"

// parseEnv overlays cfg with MEMORIES_* environment variables. Variables
// already set in the process take precedence over the .env file. Values
// that cannot be converted panic.
func parseEnv(cfg *Config) {
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			panic(err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	stringKeys := map[string]*string{
		"BACKEND":          &cfg.Backend,
		"SQLITE_PATH":      &cfg.SQLitePath,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"REDIS_ADDR":       &cfg.RedisAddr,
		"REDIS_PASSWORD":   &cfg.RedisPassword,
		"REDIS_PREFIX":     &cfg.RedisPrefix,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_ENDPOINT":      &cfg.S3BaseEndpoint,
		"S3_ROOT_USER":     &cfg.S3RootUser,
		"S3_ROOT_PASSWORD": &cfg.S3RootPassword,
		"S3_PREFIX":        &cfg.S3Prefix,
		"HASH_SCHEME":      &cfg.HashScheme,
		"SESSION_SECRET":   &cfg.SessionSecret,
		"LOG_LEVEL":        &cfg.LogLevel,
		"LOG_FORMAT":       &cfg.LogFormat,
		"LOG_FILE":         &cfg.LogFile,
	}
	for key, dst := range stringKeys {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	intKeys := map[string]*int{
		"REDIS_DB":     &cfg.RedisDB,
		"MEMORY_QUOTA": &cfg.MemoryQuotaBytes,
	}
	for key, dst := range intKeys {
		if v.IsSet(key) {
			n, err := castInt(v.GetString(key))
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}

	if v.IsSet("SESSION_TTL") {
		d, err := castDuration(v.GetString("SESSION_TTL"))
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}
}
