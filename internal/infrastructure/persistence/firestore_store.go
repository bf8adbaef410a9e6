package persistence

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

type firestoreDocument struct {
	Body      string    `firestore:"body"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// FirestoreStore keeps each document in one collection, the JSON payload
// stored as a string field.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{
		client:     client,
		collection: collection,
	}
}

func (s *FirestoreStore) Name() string {
	return config.StorageFirestore
}

func (s *FirestoreStore) Get(ctx context.Context, name string) ([]byte, error) {
	snap, err := s.client.Collection(s.collection).Doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrDocumentNotFound
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, "firestore get "+name)
	}

	var doc firestoreDocument
	if err = snap.DataTo(&doc); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, "firestore decode "+name)
	}

	return []byte(doc.Body), nil
}

func (s *FirestoreStore) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.Collection(s.collection).Doc(name).Set(ctx, firestoreDocument{
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, "firestore set "+name)
	}

	return nil
}
