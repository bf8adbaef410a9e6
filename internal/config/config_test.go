package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"epic_notifier/internal/config"
	"epic_notifier/internal/domain"
	"epic_notifier/pkg/errcodes"
)

func TestSMTPValidate(t *testing.T) {
	t.Parallel()

	valid := config.SMTP{
		Server:    "smtp.example.com",
		Port:      "587",
		Login:     "bot@example.com",
		Password:  "secret",
		FromEmail: "bot@example.com",
	}

	tests := []struct {
		name    string
		mutate  func(*config.SMTP)
		wantErr string
	}{
		{
			name:   "complete",
			mutate: func(*config.SMTP) {},
		},
		{
			name:    "missing server and password",
			mutate:  func(s *config.SMTP) { s.Server, s.Password = "", " " },
			wantErr: "Missing required environment variables: SMTP_SERVER, PASSWORD",
		},
		{
			name:    "port not numeric",
			mutate:  func(s *config.SMTP) { s.Port = "five" },
			wantErr: "SMTP_PORT must be a valid number, got: five",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			smtp := valid
			tt.mutate(&smtp)

			err := smtp.Validate()
			if tt.wantErr == "" {
				rq.NoError(err)

				return
			}

			rq.ErrorContains(err, tt.wantErr)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(errcodes.ConfigurationMissing, code)
		})
	}
}

func TestStorageValidate(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	rq.NoError(config.Storage{Mode: config.StorageFile}.Validate())
	rq.NoError(config.Storage{Mode: config.StorageHybrid, HybridPrimary: config.StorageFirestore}.Validate())
	rq.Error(config.Storage{Mode: "mongodb"}.Validate())
	rq.Error(config.Storage{Mode: config.StorageHybrid, HybridPrimary: config.StorageFile}.Validate())

	rq.Equal(config.StorageS3, config.Storage{Mode: config.StorageHybrid, HybridPrimary: config.StorageS3}.Backend())
	rq.Equal(config.StorageFile, config.Storage{Mode: config.StorageFile}.Backend())
}

func TestSchedulerValidate(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	rq.NoError(config.Scheduler{Mode: config.SchedulerInterval, Interval: time.Hour}.Validate())
	rq.Error(config.Scheduler{Mode: config.SchedulerInterval}.Validate())
	rq.NoError(config.Scheduler{Mode: config.SchedulerAsynq}.Validate())
	rq.Error(config.Scheduler{Mode: "cron"}.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_MODE", "file")
	t.Setenv("SCHEDULER_MODE", "off")
	t.Setenv("FIRESTORE_CREDENTIALS_JSON", `{"private_key":"line1\nline2"}`)

	rq := require.New(t)

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("admin", cfg.Admin.Username)
	rq.Equal(30*time.Second, cfg.Epic.RequestTimeout)
	rq.Equal(3*time.Second, cfg.Epic.CheckTimeout)
	rq.Equal(1000, cfg.Epic.SearchCount)
	rq.False(cfg.Epic.LogResponseBody)
	rq.Equal("{\"private_key\":\"line1\nline2\"}", cfg.Firestore.CredentialsJSON)
}
