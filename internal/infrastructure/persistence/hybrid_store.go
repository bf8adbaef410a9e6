package persistence

import (
	"context"
	"log/slog"

	"epic_notifier/internal/config"
	"epic_notifier/pkg/logx"
)

// HybridStore writes to a primary backend and mirrors every write to a local
// file store. Reads prefer the primary and fall back to the mirror.
type HybridStore struct {
	primary DocumentStore
	mirror  DocumentStore
}

func NewHybridStore(primary, mirror DocumentStore) *HybridStore {
	return &HybridStore{
		primary: primary,
		mirror:  mirror,
	}
}

func (s *HybridStore) Name() string {
	return config.StorageHybrid
}

func (s *HybridStore) Primary() DocumentStore {
	return s.primary
}

func (s *HybridStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.primary.Get(ctx, name)
	if err == nil {
		return data, nil
	}

	if !isNotFound(err) {
		logger(ctx).Warn(
			"primary read failed, using file mirror",
			slog.String(logx.FieldBackend, s.primary.Name()),
			slog.String(logx.FieldKey, name),
			logx.Error(err),
		)
	}

	return s.mirror.Get(ctx, name)
}

// Put fails only when the mirror write fails.
func (s *HybridStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.primary.Put(ctx, name, data); err != nil {
		logger(ctx).Error(
			"primary write failed",
			slog.String(logx.FieldBackend, s.primary.Name()),
			slog.String(logx.FieldKey, name),
			logx.Error(err),
		)
	}

	return s.mirror.Put(ctx, name, data)
}
