package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/application"
	"epic_notifier/internal/config"
	"epic_notifier/internal/domain/entity"
)

func fileConfig(t *testing.T) config.Config {
	t.Helper()

	return config.Config{
		Storage: config.Storage{Mode: config.StorageFile, Dir: t.TempDir()},
		Epic:    config.Epic{SearchCount: 10},
	}
}

func TestRunOnceFailsFastWithoutSMTP(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	cfg := fileConfig(t)

	status, err := application.RunOnce(context.Background(), cfg, false)
	rq.NoError(err)
	rq.Equal(entity.StatusError, status)

	// nothing was recorded
	_, err = os.Stat(filepath.Join(cfg.Storage.Dir, "games_history.json"))
	rq.ErrorIs(err, os.ErrNotExist)
}

func TestNewPipelineUnknownBackend(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	cfg := fileConfig(t)
	cfg.Storage.Mode = "floppy"

	_, err := application.RunOnce(context.Background(), cfg, true)
	rq.Error(err)
}
