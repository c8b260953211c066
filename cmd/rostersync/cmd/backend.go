package cmd

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/rostersync/internal/config"
	"github.com/dtroode/rostersync/internal/model"
	"github.com/dtroode/rostersync/internal/repository/postgres"
	"github.com/dtroode/rostersync/internal/repository/sqlite"
	"github.com/dtroode/rostersync/internal/storage/file"
	storage "github.com/dtroode/rostersync/internal/storage/minio"
)

// openBackend builds the configured snapshot backend. The returned close
// function releases its connections.
func openBackend(ctx context.Context, cfg *config.Config) (model.SnapshotBackend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendFile:
		b, err := file.NewBackend(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return b, noop, nil

	case config.BackendPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, noop, err
		}
		return postgres.NewSnapshotRepository(conn), conn.Close, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		return sqlite.NewSnapshotRepository(db), db.Close, nil

	case config.BackendMinio:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create minio client: %w", err)
		}
		c, err := storage.NewClient(ctx, minioClient, cfg.Minio.Bucket, cfg.Minio.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return c, noop, nil
	}

	return nil, noop, fmt.Errorf("%w: unknown storage backend %q", model.ErrInvalidArgument, cfg.Storage.Backend)
}
