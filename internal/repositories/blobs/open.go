package blobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/memories/internal/config"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/memory"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/postgres"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/redis"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/s3"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs/sqlite"
)

// Open returns the Repository selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Repository, error) {
	var (
		repo Repository
		err  error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		repo = memory.NewRepository(cfg.MemoryQuotaBytes)
	case config.BackendSQLite:
		repo, err = openSQLite(ctx, cfg.SQLitePath)
	case config.BackendPostgres:
		repo, err = openPostgres(ctx, cfg.DatabaseDSN)
	case config.BackendRedis:
		repo, err = openRedis(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendS3:
		repo, err = openS3(ctx, s3.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Prefix:       cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	logger.Info(ctx, "storage opened", "backend", cfg.Backend)
	return repo, nil
}

// Constructors are variables so Open can be tested without live services.
var (
	openSQLite = func(ctx context.Context, dsn string) (Repository, error) {
		return sqlite.Open(ctx, dsn)
	}
	openPostgres = func(ctx context.Context, dsn string) (Repository, error) {
		return postgres.Open(ctx, dsn)
	}
	openRedis = func(ctx context.Context, cfg redis.Config) (Repository, error) {
		return redis.Open(ctx, cfg)
	}
	openS3 = func(ctx context.Context, cfg s3.Config) (Repository, error) {
		return s3.Open(ctx, cfg)
	}
)
