package persistence

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

// FileStore keeps each document as <dir>/<name>.json.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Name() string {
	return config.StorageFile
}

func (s *FileStore) Get(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrDocumentNotFound
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.StorageUnavailable, "read "+name)
	}

	return data, nil
}

// Put replaces the document atomically via a temp file rename.
func (s *FileStore) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, "mkdir "+s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return domain.WrapError(err, errcodes.StorageUnavailable, "create temp for "+name)
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return domain.WrapError(err, errcodes.StorageUnavailable, "write "+name)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return domain.WrapError(err, errcodes.StorageUnavailable, "close "+name)
	}

	if err = os.Rename(tmp.Name(), s.path(name)); err != nil {
		_ = os.Remove(tmp.Name())

		return domain.WrapError(err, errcodes.StorageUnavailable, "rename "+name)
	}

	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
