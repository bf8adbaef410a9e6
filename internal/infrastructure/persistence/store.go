package persistence

import (
	"context"
	"errors"

	"epic_notifier/internal/domain"
)

// Document names shared by every backend.
const (
	DocSettings            = "settings"
	DocUserEmails          = "user_emails"
	DocGamesHistory        = "games_history"
	DocNotificationHistory = "notification_history"
)

// DocumentStore keeps whole JSON documents by name. Get returns
// domain.ErrDocumentNotFound when the document was never written.
type DocumentStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Name() string
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrDocumentNotFound)
}
