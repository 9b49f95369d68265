package storage

import (
	"context"
	"fmt"

	"shelter-registry/internal/adapters/storage/jsonfile"
	"shelter-registry/internal/adapters/storage/memory"
	pg "shelter-registry/internal/adapters/storage/postgres"
	s3store "shelter-registry/internal/adapters/storage/s3"
	"shelter-registry/internal/adapters/storage/sqlite"
	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/platform/config"
)

// Open construye el Repository según storage.driver. El cleanup devuelto
// cierra conexiones (no-op para file/memory/s3).
func Open(ctx context.Context, cfg config.Storage) (shelters.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverFile, "":
		return jsonfile.NewDatasetRepo(cfg.Path), noop, nil

	case config.DriverMemory:
		return memory.NewDatasetRepo(), noop, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return pg.NewDatasetRepo(db, cfg.Postgres.Dataset), db.Close, nil

	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLite.Path, cfg.SQLite.Dataset)
		if err != nil {
			return nil, noop, err
		}
		return repo, repo.Close, nil

	case config.DriverS3:
		repo, err := s3store.New(ctx, s3store.Config{
			Bucket:    cfg.S3.Bucket,
			Key:       cfg.S3.Key,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
			Timeout:   cfg.S3.Timeout,
		})
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
