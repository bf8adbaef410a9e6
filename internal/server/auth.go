package server

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"epic_notifier/internal/config"
	"epic_notifier/pkg/errcodes"
	"epic_notifier/pkg/httpx/reply"
	"epic_notifier/pkg/httpx/req"
	"epic_notifier/pkg/rest"
)

const (
	sessionName   = "epic_notifier_session"
	sessionMaxAge = 24 * 60 * 60

	keyIsAdmin  = "is_admin"
	keyUsername = "username"

	adminPanelPath = "/controls"
)

// Auth guards the admin endpoints with a signed session cookie.
type Auth struct {
	store        sessions.Store
	username     []byte
	passwordHash []byte
}

// NewAuth hashes the configured password once. Without SECRET_KEY a random
// signing key is used, so sessions do not survive a restart.
func NewAuth(cfg config.Admin) (*Auth, error) {
	secret := []byte(cfg.SessionSecret)

	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("rand.Read: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		Secure:   cfg.SecureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Auth{
		store:        store,
		username:     []byte(cfg.Username),
		passwordHash: hash,
	}, nil
}

func (a *Auth) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil

	return userOK && passOK
}

func (a *Auth) IsAdmin(r *http.Request) bool {
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return false
	}

	isAdmin, _ := session.Values[keyIsAdmin].(bool)

	return isAdmin
}

// RequireAdmin rejects requests without an admin session.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.IsAdmin(r) {
			reply.Error(r.Context(), w, failure.NewUnauthorizedError(
				"admin session required",
				failure.WithCode(errcodes.Unauthorized),
				failure.WithDescription("Authentication required"),
			))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *Auth) postLogin(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.Credentials

	if err := req.Read(w, r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if !a.credentialsMatch(request.Username, request.Password) {
		return failure.NewUnauthorizedError(
			"login failed for "+request.Username,
			failure.WithCode(errcodes.CredentialsMismatch),
			failure.WithDescription("Invalid credentials"),
		)
	}

	// A stale or foreign cookie yields a fresh session.
	session, _ := a.store.Get(r, sessionName)
	session.Values[keyIsAdmin] = true
	session.Values[keyUsername] = request.Username

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}

	logger(ctx).Info("admin logged in")

	reply.JSON(ctx, w, http.StatusOK, rest.LoginResult{Success: true, Redirect: adminPanelPath})

	return nil
}

func (a *Auth) postLogout(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.Result{Success: true})

	return nil
}
