package connectors

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"epic_notifier/pkg/logx"
)

// Postgres holds the documents database. The schema is migrated by the
// caller before Client is first used.
type Postgres struct {
	value           *sqlx.DB
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	init            sync.Once
}

func (p *Postgres) Client(ctx context.Context) *sqlx.DB {
	p.init.Do(func() {
		p.value = lo.Must(sqlx.ConnectContext(ctx, "pgx", p.DSN))

		p.value.SetMaxOpenConns(p.MaxOpenConns)
		p.value.SetMaxIdleConns(p.MaxIdleConns)
		p.value.SetConnMaxLifetime(p.ConnMaxLifetime)

		logger(ctx).Info("postgres connected", slog.String("database", p.database()))
	})

	return p.value
}

func (p *Postgres) Close(ctx context.Context) {
	if p.value == nil {
		return
	}

	if err := p.value.Close(); err != nil {
		logger(ctx).Error("postgresClient.Close", logx.Error(err))
	}

	logger(ctx).Info("postgres disconnected", slog.String("database", p.database()))
}

// database names the target database without leaking credentials. Both URL
// and key=value DSNs are understood.
func (p *Postgres) database() string {
	if u, err := url.Parse(p.DSN); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}

	for _, field := range strings.Fields(p.DSN) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return name
		}
	}

	return ""
}
