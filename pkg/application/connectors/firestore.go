package connectors

import (
	"context"
	"log/slog"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/samber/lo"
	"google.golang.org/api/option"

	"epic_notifier/pkg/logx"
)

type Firestore struct {
	value           *firestore.Client
	ProjectID       string
	CredentialsJSON string
	init            sync.Once
}

func (f *Firestore) Client(ctx context.Context) *firestore.Client {
	f.init.Do(func() {
		var opts []option.ClientOption

		if f.CredentialsJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(f.CredentialsJSON)))
		}

		app := lo.Must(firebase.NewApp(ctx, &firebase.Config{ProjectID: f.ProjectID}, opts...))
		f.value = lo.Must(app.Firestore(ctx))

		logger(ctx).Info("firestore connected", slog.String("project", f.ProjectID))
	})

	return f.value
}

func (f *Firestore) Close(ctx context.Context) {
	if f.value == nil {
		return
	}

	if err := f.value.Close(); err != nil {
		logger(ctx).Error("firestoreClient.Close", logx.Error(err))
	}

	logger(ctx).Info("firestore disconnected", slog.String("project", f.ProjectID))
}
