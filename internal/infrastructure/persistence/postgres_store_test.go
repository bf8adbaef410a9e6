package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/domain"
	"epic_notifier/internal/infrastructure/persistence"
	"epic_notifier/pkg/dbtest"
)

func TestPostgresStore(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	rq.NoError(persistence.Migrate(dbtest.DSN(t)))

	store := persistence.NewPostgresStore(dbtest.Connect(t, "documents"))

	_, err := store.Get(ctx, persistence.DocSettings)
	rq.ErrorIs(err, domain.ErrDocumentNotFound)

	rq.NoError(store.Put(ctx, persistence.DocSettings, []byte(`{"currency":"INR"}`)))
	rq.NoError(store.Put(ctx, persistence.DocSettings, []byte(`{"currency":"USD"}`)))

	data, err := store.Get(ctx, persistence.DocSettings)
	rq.NoError(err)
	rq.JSONEq(`{"currency":"USD"}`, string(data))
}
