package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	isolate(t)
	t.Setenv("MEMORIES_BACKEND", "s3")
	t.Setenv("MEMORIES_S3_BUCKET", "photos")
	t.Setenv("MEMORIES_REDIS_DB", "2")
	t.Setenv("MEMORIES_SESSION_TTL", "45m")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, BackendS3, cfg.Backend)
	assert.Equal(t, "photos", cfg.S3Bucket)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "memories.db", cfg.SQLitePath)
}

func TestParseEnv_DotEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEMORIES_SQLITE_PATH=/data/dotenv.db\n"), 0o600))
	dotenvPath = path
	// godotenv never overrides variables that exist, even empty ones
	require.NoError(t, os.Unsetenv("MEMORIES_SQLITE_PATH"))

	var cfg Config
	parseEnv(&cfg)
	assert.Equal(t, "/data/dotenv.db", cfg.SQLitePath)
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	isolate(t)
	t.Setenv("MEMORIES_MEMORY_QUOTA", "lots")

	assert.Panics(t, func() { parseEnv(&Config{}) })
}
