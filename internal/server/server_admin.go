package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/httpx/req"
	"epic_notifier/pkg/rest"
)

type settingsRepository interface {
	ReadSettings(ctx context.Context) (entity.Settings, error)
	WriteSettings(ctx context.Context, settings entity.Settings) error
	Stats(ctx context.Context) entity.Stats
}

type runExecutor interface {
	Execute(ctx context.Context, kind pipeline.Kind, extra ...pipeline.Observer) (*pipeline.Summary, error)
}

type AdminServer struct {
	repo        settingsRepository
	runner      runExecutor
	storageMode string
}

func NewAdminServer(repo settingsRepository, runner runExecutor, storageMode string) AdminServer {
	return AdminServer{
		repo:        repo,
		runner:      runner,
		storageMode: storageMode,
	}
}

func (s AdminServer) getSettings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	settings, err := s.repo.ReadSettings(ctx)
	if err != nil {
		return fmt.Errorf("repo.ReadSettings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.AdminSettings{
		Settings:    newRESTSettings(settings),
		StorageMode: s.storageMode,
	})

	return nil
}

// postSettings replaces the settings document. Runs read settings at start,
// so the change applies from the next run on.
func (s AdminServer) postSettings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Settings

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	request.Currency = strings.ToUpper(request.Currency)

	if err := s.repo.WriteSettings(ctx, newDomainSettings(request)); err != nil {
		return fmt.Errorf("repo.WriteSettings: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Message{Message: "Settings saved successfully"})

	return nil
}

func (s AdminServer) getDBStats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, newRESTStats(s.repo.Stats(ctx)))

	return nil
}

// getStreamRun streams a scheduled run, or a forced one with force=true.
func (s AdminServer) getStreamRun(w http.ResponseWriter, r *http.Request) error {
	kind := pipeline.KindScheduled
	if strings.EqualFold(r.URL.Query().Get("force"), "true") {
		kind = pipeline.KindForced
	}

	return s.stream(w, r, kind)
}

func (s AdminServer) getStreamSearch(w http.ResponseWriter, r *http.Request) error {
	return s.stream(w, r, pipeline.KindSearch)
}

// stream keeps running after the client disconnects; the run is not
// tied to the request lifetime.
func (s AdminServer) stream(w http.ResponseWriter, r *http.Request, kind pipeline.Kind) error {
	ctx := context.WithoutCancel(r.Context())
	events := newEventStream(w)

	if _, err := s.runner.Execute(ctx, kind, events); err != nil {
		events.send(ctx, entity.ErrorEvent(err.Error()))
	}

	events.close(ctx)

	return nil
}
