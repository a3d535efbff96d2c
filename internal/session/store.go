// Package session holds the authenticated identity and drives the bearer
// token lifecycle: login, register, logout, and startup reconciliation of a
// previously persisted token.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/tansen/vitrine/internal/api"
	"github.com/tansen/vitrine/internal/token"
)

// AuthError is a credential or registration failure suitable for form
// display. Field names the form field the message belongs to when the
// backend's response makes that recognizable.
type AuthError struct {
	Field   string
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// Listener receives the new token value on every token transition. An empty
// value means the session ended.
type Listener func(tok string)

// Snapshot is the identity state visible to views.
type Snapshot struct {
	User          api.User
	Authenticated bool
	Loading       bool
}

// Store owns the session state. Token transitions are published to
// subscribers; the cart store subscribes to react to login and logout.
type Store struct {
	client    *api.Client
	tokenPath string

	mu        sync.Mutex
	user      api.User
	authed    bool
	tok       string
	loading   bool
	listeners []Listener
}

// New creates a session store backed by the given API client. tokenPath
// locates the persisted token file; empty uses the default.
func New(client *api.Client, tokenPath string) *Store {
	if strings.TrimSpace(tokenPath) == "" {
		tokenPath = token.DefaultPath()
	}
	return &Store{client: client, tokenPath: tokenPath}
}

// Subscribe registers a listener for token transitions. Listeners run on the
// calling goroutine of the transition, outside the store lock.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Snapshot returns the current identity state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{User: s.user, Authenticated: s.authed, Loading: s.loading}
}

// Login exchanges credentials for a session. The token is persisted and
// published; the returned identity replaces any previous one wholesale.
func (s *Store) Login(ctx context.Context, email, password string) (api.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		slog.Error("login failed", slog.String("error", err.Error()))
		return api.User{}, authError(err, "Login failed")
	}
	s.establish(result)
	return result.User, nil
}

// Register provisions a new account and starts its session, with the same
// token handling as Login. Duplicate-email rejections carry an email field
// hint so forms can attach the message to the right input.
func (s *Store) Register(ctx context.Context, username, email, password string) (api.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		slog.Error("registration failed", slog.String("error", err.Error()))
		return api.User{}, authError(err, "Registration failed")
	}
	s.establish(result)
	return result.User, nil
}

// Logout ends the session locally: the persisted token is removed, identity
// cleared, and an empty token published. No network call is made.
func (s *Store) Logout() {
	if err := token.Clear(s.tokenPath); err != nil {
		slog.Warn("clear persisted token failed", slog.String("error", err.Error()))
	}
	s.client.SetToken("")

	s.mu.Lock()
	s.user = api.User{}
	s.authed = false
	s.tok = ""
	s.mu.Unlock()

	s.publish("")
}

// Bootstrap reconciles a persisted token at startup. A valid token yields a
// live session; any failure silently discards the token and the client
// proceeds unauthenticated. Fire and forget, no retry.
func (s *Store) Bootstrap(ctx context.Context) {
	stored := token.Load(s.tokenPath)
	if stored == "" {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.client.SetToken(stored)
	user, err := s.client.Profile(ctx)
	if err != nil {
		slog.Info("persisted token rejected, starting unauthenticated",
			slog.Bool("unauthorized", api.IsStatus(err, http.StatusUnauthorized)),
			slog.String("error", err.Error()))
		s.client.SetToken("")
		if clearErr := token.Clear(s.tokenPath); clearErr != nil {
			slog.Warn("clear persisted token failed", slog.String("error", clearErr.Error()))
		}
		return
	}

	s.mu.Lock()
	s.user = user
	s.authed = true
	s.tok = stored
	s.mu.Unlock()

	s.publish(stored)
}

// UpdateProfile changes username and email on the backend and replaces the
// held identity on success.
func (s *Store) UpdateProfile(ctx context.Context, username, email string) (api.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.client.UpdateProfile(ctx, username, email)
	if err != nil {
		slog.Error("profile update failed", slog.String("error", err.Error()))
		return api.User{}, authError(err, "Failed to update profile")
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

func (s *Store) establish(result api.AuthResult) {
	if err := token.Save(s.tokenPath, result.Token); err != nil {
		// The session still works for this run; only persistence is lost.
		slog.Warn("persist token failed", slog.String("error", err.Error()))
	}
	s.client.SetToken(result.Token)

	s.mu.Lock()
	s.user = result.User
	s.authed = true
	s.tok = result.Token
	s.mu.Unlock()

	s.publish(result.Token)
}

func (s *Store) publish(tok string) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(tok)
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func authError(err error, fallback string) *AuthError {
	authErr := &AuthError{
		Message: api.ErrorMessage(err, fallback),
		Err:     err,
	}
	if api.IsStatus(err, http.StatusConflict) ||
		strings.Contains(strings.ToLower(authErr.Message), "email") {
		authErr.Field = "email"
	}
	return authErr
}
