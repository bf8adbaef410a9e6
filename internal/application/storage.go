package application

import (
	"context"
	"fmt"
	"log/slog"

	"epic_notifier/internal/config"
	"epic_notifier/internal/infrastructure/persistence"
	"epic_notifier/pkg/application/connectors"
)

// openStore connects the document backend selected by STORAGE_MODE. The
// returned func releases the connections.
func openStore(ctx context.Context, cfg config.Config) (persistence.DocumentStore, func(context.Context), error) {
	if cfg.Storage.Mode == config.StorageFile {
		logger(ctx).Info("using file storage", slog.String("dir", cfg.Storage.Dir))

		return persistence.NewFileStore(cfg.Storage.Dir), func(context.Context) {}, nil
	}

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Storage.Mode == config.StorageHybrid {
		logger(ctx).Info(
			"using hybrid storage",
			slog.String("primary", backend.Name()),
			slog.String("dir", cfg.Storage.Dir),
		)

		return persistence.NewHybridStore(backend, persistence.NewFileStore(cfg.Storage.Dir)), closeBackend, nil
	}

	logger(ctx).Info("using document storage", slog.String("backend", backend.Name()))

	return backend, closeBackend, nil
}

func openBackend(ctx context.Context, cfg config.Config) (persistence.DocumentStore, func(context.Context), error) {
	switch cfg.Storage.Backend() {
	case config.StorageRedis:
		rds := &connectors.Redis{
			Address:        cfg.Redis.Address,
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.DB,
			PoolSize:       cfg.Redis.PoolSize,
		}

		return persistence.NewRedisStore(rds.Client(ctx), cfg.Redis.KeyPrefix), rds.Close, nil

	case config.StoragePostgres:
		if err := persistence.Migrate(cfg.Postgres.DSN); err != nil {
			return nil, nil, fmt.Errorf("persistence.Migrate: %w", err)
		}

		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}

		return persistence.NewPostgresStore(pg.Client(ctx)), pg.Close, nil

	case config.StorageS3:
		s3 := &connectors.S3{
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			EndpointURL:     cfg.S3.EndpointURL,
			Bucket:          cfg.S3.Bucket,
		}

		return persistence.NewS3Store(s3.Client(ctx), cfg.S3.Bucket, cfg.S3.Prefix), func(context.Context) {}, nil

	case config.StorageFirestore:
		fs := &connectors.Firestore{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsJSON: cfg.Firestore.CredentialsJSON,
		}

		return persistence.NewFirestoreStore(fs.Client(ctx), cfg.Firestore.Collection), fs.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend())
	}
}
