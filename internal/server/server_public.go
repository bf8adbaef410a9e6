package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"epic_notifier/internal/domain"
	"epic_notifier/internal/domain/entity"
	"epic_notifier/pkg/contextx"
	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/httpx/req"
	"epic_notifier/pkg/rest"
)

type subscriberRepository interface {
	ReadSettings(ctx context.Context) (entity.Settings, error)
	SubscriberEmail(ctx context.Context, fingerprint string) (string, error)
	RegisterSubscriber(ctx context.Context, fingerprint, email string) error
	UnregisterSubscriber(ctx context.Context, fingerprint string) error
	ReadGamesHistory(ctx context.Context) ([]entity.HistoryGame, error)
}

type PublicServer struct {
	repo subscriberRepository
}

func NewPublicServer(repo subscriberRepository) PublicServer {
	return PublicServer{repo: repo}
}

// getMe tells a visitor whether its browser already registered an email.
func (s PublicServer) getMe(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	fingerprint, err := contextx.FingerprintFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.FingerprintFromContext: %w", err)
	}

	email, err := s.repo.SubscriberEmail(ctx, fingerprint.String())
	if err != nil {
		return fmt.Errorf("repo.SubscriberEmail: %w", err)
	}

	settings, err := s.repo.ReadSettings(ctx)
	if err != nil {
		logger(ctx).Warn("settings unavailable, using defaults")
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Visitor{
		Registered:     email != "",
		Email:          email,
		PriceThreshold: settings.PriceThreshold,
		Currency:       settings.Currency,
	})

	return nil
}

func (s PublicServer) postRegisterEmail(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.RegisterEmail

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	fingerprint, err := contextx.FingerprintFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.FingerprintFromContext: %w", err)
	}

	if err = s.repo.RegisterSubscriber(ctx, fingerprint.String(), strings.TrimSpace(request.Email)); err != nil {
		return fmt.Errorf("repo.RegisterSubscriber: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Result{Success: true, Message: "Email registered successfully"})

	return nil
}

func (s PublicServer) postUnregisterEmail(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	fingerprint, err := contextx.FingerprintFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.FingerprintFromContext: %w", err)
	}

	err = s.repo.UnregisterSubscriber(ctx, fingerprint.String())
	if errors.Is(err, domain.ErrEmailNotRegistered) {
		return failure.NewNotFoundErrorFromError(
			err,
			failure.WithCode(errcodes.EmailNotRegistered),
			failure.WithDescription("No email registered for this browser"),
		)
	}

	if err != nil {
		return fmt.Errorf("repo.UnregisterSubscriber: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Result{Success: true})

	return nil
}

// getPublic shows the settings with every email masked.
func (s PublicServer) getPublic(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	settings, err := s.repo.ReadSettings(ctx)
	if err != nil {
		return fmt.Errorf("repo.ReadSettings: %w", err)
	}

	settings.Emails = settings.MaskedEmails()

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s PublicServer) getGamesHistory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	history, err := s.repo.ReadGamesHistory(ctx)
	if err != nil {
		return fmt.Errorf("repo.ReadGamesHistory: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTGames(history))

	return nil
}
