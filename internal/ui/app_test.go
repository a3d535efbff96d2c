package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tansen/vitrine/internal/api"
)

// Alt-screen handling belongs to the program options in Run; Init issues
// exactly one view command, so its message arrives directly rather than
// wrapped in a batch.
func TestInitFetchesProductsWhenSignedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"products":   []any{},
				"totalPages": 1,
			})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	m := Model{ctx: context.Background(), client: client, currentView: viewProducts}
	m.products = newProductsState()

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	msg := cmd()
	pm, ok := msg.(productsMsg)
	if !ok {
		t.Fatalf("Init command produced %T, want productsMsg", msg)
	}
	if pm.err != nil {
		t.Fatalf("initial product fetch failed: %v", pm.err)
	}
	if pm.forAdmin {
		t.Fatal("initial fetch flagged for the admin view")
	}
}

func TestInitFocusesAuthFormWhenSignedOut(t *testing.T) {
	m := Model{currentView: viewAuth}
	m.auth = newAuthState()

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	if _, ok := cmd().(tea.BatchMsg); ok {
		t.Fatal("Init produced a batch, want the single focus command")
	}
}
