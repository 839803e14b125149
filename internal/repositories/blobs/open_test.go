package blobs

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/memories/internal/config"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/memory"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/redis"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/s3"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *config.Config {
	var c config.Config
	c.LoadDefaults()
	return &c
}

func TestOpen_Memory(t *testing.T) {
	cfg := defaults()
	cfg.Backend = config.BackendMemory

	repo, err := Open(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	cfg := defaults()
	cfg.SQLitePath = ":memory:"

	repo, err := Open(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	assert.IsType(t, &sqlite.Repository{}, repo)
}

func TestOpen_PassesBackendSettings(t *testing.T) {
	origRedis, origS3, origPG := openRedis, openS3, openPostgres
	t.Cleanup(func() { openRedis, openS3, openPostgres = origRedis, origS3, origPG })

	var gotRedis redis.Config
	openRedis = func(ctx context.Context, c redis.Config) (Repository, error) {
		gotRedis = c
		return memory.NewRepository(0), nil
	}
	var gotS3 s3.Config
	openS3 = func(ctx context.Context, c s3.Config) (Repository, error) {
		gotS3 = c
		return memory.NewRepository(0), nil
	}
	openPostgres = func(ctx context.Context, dsn string) (Repository, error) {
		return nil, errors.New("connection refused")
	}

	cfg := defaults()
	cfg.Backend = config.BackendRedis
	cfg.RedisAddr = "cache:6379"
	cfg.RedisDB = 4
	_, err := Open(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, redis.Config{Addr: "cache:6379", DB: 4, Prefix: "memories:"}, gotRedis)

	cfg.Backend = config.BackendS3
	cfg.S3Bucket = "photos"
	_, err = Open(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, "photos", gotS3.Bucket)
	assert.Equal(t, "memories", gotS3.Prefix)

	cfg.Backend = config.BackendPostgres
	_, err = Open(context.Background(), cfg, logging.Nop())
	assert.ErrorContains(t, err, "open postgres backend: connection refused")

	cfg.Backend = "floppy"
	_, err = Open(context.Background(), cfg, logging.Nop())
	assert.Error(t, err)
}
