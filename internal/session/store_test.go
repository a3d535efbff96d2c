package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/tansen/vitrine/internal/api"
	"github.com/tansen/vitrine/internal/token"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	tokenPath := filepath.Join(t.TempDir(), "session.toml")
	return New(client, tokenPath), tokenPath
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(api.AuthResult{
				Token: "tok-login",
				User:  api.User{ID: "u1", Username: "ada", Email: body.Email, Role: api.RoleCustomer},
			})
		case "/auth/register":
			var body struct {
				Username string `json:"username"`
				Email    string `json:"email"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Email == "taken@example.com" {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"Email is already registered"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(api.AuthResult{
				Token: "tok-register",
				User:  api.User{ID: "u2", Username: body.Username, Email: body.Email, Role: api.RoleCustomer},
			})
		case "/users/profile":
			if r.Header.Get("Authorization") != "Bearer tok-valid" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Invalid token"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(api.User{ID: "u1", Username: "ada", Email: "a@b.c", Role: api.RoleAdmin})
		default:
			http.NotFound(w, r)
		}
	})
}

func TestLogin_EstablishesAndPublishes(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))

	var published []string
	store.Subscribe(func(tok string) { published = append(published, tok) })

	user, err := store.Login(context.Background(), "a@b.c", "hunter2")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "u1" || user.Username != "ada" {
		t.Fatalf("Login user = %#v, want u1/ada", user)
	}

	snap := store.Snapshot()
	if !snap.Authenticated || snap.User.ID != "u1" {
		t.Fatalf("snapshot = %#v, want authenticated u1", snap)
	}
	if snap.Loading {
		t.Fatal("Loading = true after login completed")
	}
	if got := token.Load(tokenPath); got != "tok-login" {
		t.Fatalf("persisted token = %q, want tok-login", got)
	}
	if len(published) != 1 || published[0] != "tok-login" {
		t.Fatalf("published = %v, want one tok-login transition", published)
	}
}

func TestLogin_BadCredentialsSurfacesBackendMessage(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))

	_, err := store.Login(context.Background(), "a@b.c", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login error = %T (%v), want *AuthError", err, err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Fatalf("Message = %q, want backend message", authErr.Message)
	}
	if store.Snapshot().Authenticated {
		t.Fatal("Authenticated = true after failed login")
	}
	if got := token.Load(tokenPath); got != "" {
		t.Fatalf("persisted token = %q, want none", got)
	}
}

func TestLogin_NetworkFailureUsesFallbackMessage(t *testing.T) {
	client, err := api.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store := New(client, filepath.Join(t.TempDir(), "session.toml"))

	_, err = store.Login(context.Background(), "a@b.c", "hunter2")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login error = %T (%v), want *AuthError", err, err)
	}
	if authErr.Message != "Login failed" {
		t.Fatalf("Message = %q, want generic fallback", authErr.Message)
	}
}

func TestRegister_DuplicateEmailCarriesFieldHint(t *testing.T) {
	store, _ := newTestStore(t, authBackend(t))

	_, err := store.Register(context.Background(), "ada", "taken@example.com", "hunter2")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Register error = %T (%v), want *AuthError", err, err)
	}
	if authErr.Field != "email" {
		t.Fatalf("Field = %q, want email", authErr.Field)
	}
	if authErr.Message != "Email is already registered" {
		t.Fatalf("Message = %q, want backend message", authErr.Message)
	}
}

func TestRegister_Success(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))

	user, err := store.Register(context.Background(), "grace", "g@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Username != "grace" {
		t.Fatalf("user = %#v, want grace", user)
	}
	if got := token.Load(tokenPath); got != "tok-register" {
		t.Fatalf("persisted token = %q, want tok-register", got)
	}
}

func TestLogout_ClearsLocallyAndPublishesEmptyToken(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))

	if _, err := store.Login(context.Background(), "a@b.c", "hunter2"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	var published []string
	store.Subscribe(func(tok string) { published = append(published, tok) })

	store.Logout()

	snap := store.Snapshot()
	if snap.Authenticated || snap.User.ID != "" {
		t.Fatalf("snapshot = %#v, want cleared", snap)
	}
	if got := token.Load(tokenPath); got != "" {
		t.Fatalf("persisted token = %q, want removed", got)
	}
	if len(published) != 1 || published[0] != "" {
		t.Fatalf("published = %v, want one empty-token transition", published)
	}
}

func TestBootstrap_ValidTokenEstablishesSession(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))
	if err := token.Save(tokenPath, "tok-valid"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	var published []string
	store.Subscribe(func(tok string) { published = append(published, tok) })

	store.Bootstrap(context.Background())

	snap := store.Snapshot()
	if !snap.Authenticated || snap.User.Role != api.RoleAdmin {
		t.Fatalf("snapshot = %#v, want authenticated admin", snap)
	}
	if len(published) != 1 || published[0] != "tok-valid" {
		t.Fatalf("published = %v, want tok-valid transition", published)
	}
}

func TestBootstrap_InvalidTokenDiscardedSilently(t *testing.T) {
	store, tokenPath := newTestStore(t, authBackend(t))
	if err := token.Save(tokenPath, "tok-expired"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	var published []string
	store.Subscribe(func(tok string) { published = append(published, tok) })

	store.Bootstrap(context.Background())

	if store.Snapshot().Authenticated {
		t.Fatal("Authenticated = true with rejected token")
	}
	if got := token.Load(tokenPath); got != "" {
		t.Fatalf("persisted token = %q, want discarded", got)
	}
	if len(published) != 0 {
		t.Fatalf("published = %v, want no transitions", published)
	}
}

func TestBootstrap_NoPersistedTokenIsNoop(t *testing.T) {
	requests := 0
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))

	store.Bootstrap(context.Background())

	if requests != 0 {
		t.Fatalf("requests = %d, want 0 without a persisted token", requests)
	}
}

func TestUpdateProfile_ReplacesIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/profile" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.User{ID: "u1", Username: body.Username, Email: body.Email, Role: api.RoleCustomer})
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	store := New(client, filepath.Join(t.TempDir(), "session.toml"))

	user, err := store.UpdateProfile(context.Background(), "lovelace", "l@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.Username != "lovelace" {
		t.Fatalf("user = %#v, want lovelace", user)
	}
	if got := store.Snapshot().User.Username; got != "lovelace" {
		t.Fatalf("snapshot username = %q, want lovelace", got)
	}
}
