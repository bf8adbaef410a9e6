package persistence

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// migrate driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the documents schema up to date.
func Migrate(dsn string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}

func migrateURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}

	return dsn
}

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Name() string {
	return config.StoragePostgres
}

func (s *PostgresStore) Get(ctx context.Context, name string) ([]byte, error) {
	var body []byte

	err := s.db.GetContext(ctx, &body, `SELECT body FROM documents WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, "select document "+name)
	}

	return body, nil
}

func (s *PostgresStore) Put(ctx context.Context, name string, data []byte) error {
	const query = `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, name, string(data)); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, "upsert document "+name)
	}

	return nil
}
