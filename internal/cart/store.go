package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tansen/vitrine/internal/api"
)

// Phase is the cart store's position in the mutate-then-refetch cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMutating
	PhaseRefetching
)

// Store owns the client-side cart: a server-derived snapshot of line items
// plus the phase machine that serializes mutations. At most one
// mutate-then-refetch sequence is in flight at a time; mutations arriving
// while busy are dropped, not queued.
type Store struct {
	client *api.Client

	mu         sync.Mutex
	items      []api.LineItem
	phase      Phase
	authed     bool
	generation uint64
}

// New creates a cart store backed by the given API client. Wire it to the
// session store with Subscribe(store.HandleTokenChange-style closure) so the
// cart reacts to login and logout.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Items returns a copy of the current line-item snapshot.
func (s *Store) Items() []api.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Phase returns the store's current phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Busy reports whether a mutate-then-refetch sequence is in flight.
func (s *Store) Busy() bool {
	return s.Phase() != PhaseIdle
}

// Count returns the total quantity across all lines, for the header badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Total returns the snapshot's price sum.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// HandleTokenChange reacts to session token transitions. A new token marks
// the store authenticated and refetches; an empty token clears the snapshot
// locally with no network call and invalidates any in-flight fetch.
func (s *Store) HandleTokenChange(ctx context.Context, tok string) {
	if tok == "" {
		s.mu.Lock()
		s.items = nil
		s.authed = false
		s.generation++
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.authed = true
	s.mu.Unlock()
	s.Refresh(ctx)
}

// Refresh replaces the snapshot with the backend's cart. Without a session
// it does nothing. Fetch failures are logged and leave the snapshot as is.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	if !s.authed {
		s.mu.Unlock()
		return
	}
	gen := s.generation
	s.mu.Unlock()

	items, err := s.client.FetchCart(ctx)
	if err != nil {
		slog.Error("fetch cart failed", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	// A logout during the fetch bumps the generation; the stale response
	// must not repopulate the cleared cart.
	if s.generation == gen {
		s.items = cloneItems(items)
	}
	s.mu.Unlock()
}

// AddItem creates or merges a line for the product. Quantity below 1 is the
// caller's responsibility. The cart is refetched whether or not the mutate
// call succeeded.
func (s *Store) AddItem(ctx context.Context, product api.Product, quantity int) {
	if !s.begin() {
		return
	}
	defer s.finish()

	if err := s.client.AddCartItem(ctx, product.ID, quantity, product.Price); err != nil {
		slog.Error("add cart item failed",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()))
	}
	s.refetch(ctx)
}

// RemoveItem deletes the product's line, then refetches.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	if !s.begin() {
		return
	}
	defer s.finish()

	if err := s.client.RemoveCartItem(ctx, productID); err != nil {
		slog.Error("remove cart item failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))
	}
	s.refetch(ctx)
}

// UpdateQuantity sets the quantity of an existing line. Zero or negative
// quantity removes the line. The price sent with the update comes from the
// in-memory snapshot; an unknown product id skips the mutate call rather
// than fabricate a price. This is the only mutation whose failure is
// returned for the caller to surface.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if !s.begin() {
		return nil
	}
	defer s.finish()

	var opErr error
	switch {
	case quantity <= 0:
		if err := s.client.RemoveCartItem(ctx, productID); err != nil {
			slog.Error("remove cart item failed",
				slog.String("product_id", productID),
				slog.String("error", err.Error()))
			opErr = fmt.Errorf("error updating quantity: %s", api.ErrorMessage(err, err.Error()))
		}
	default:
		price, ok := s.lookupPrice(productID)
		if !ok {
			slog.Warn("product not found in cart", slog.String("product_id", productID))
			break
		}
		if err := s.client.UpdateCartItem(ctx, productID, quantity, price); err != nil {
			slog.Error("update cart item failed",
				slog.String("product_id", productID),
				slog.String("error", err.Error()))
			opErr = fmt.Errorf("error updating quantity: %s", api.ErrorMessage(err, err.Error()))
		}
	}

	s.refetch(ctx)
	return opErr
}

// Clear deletes the entire cart resource, then refetches.
func (s *Store) Clear(ctx context.Context) {
	if !s.begin() {
		return
	}
	defer s.finish()

	if err := s.client.ClearCart(ctx); err != nil {
		slog.Error("clear cart failed", slog.String("error", err.Error()))
	}
	s.refetch(ctx)
}

// begin claims the phase gate. It returns false when a sequence is already
// in flight; the caller drops the mutation.
func (s *Store) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		return false
	}
	s.phase = PhaseMutating
	return true
}

// finish returns the store to Idle on every exit path.
func (s *Store) finish() {
	s.mu.Lock()
	s.phase = PhaseIdle
	s.mu.Unlock()
}

func (s *Store) refetch(ctx context.Context) {
	s.mu.Lock()
	s.phase = PhaseRefetching
	gen := s.generation
	s.mu.Unlock()

	items, err := s.client.FetchCart(ctx)
	if err != nil {
		slog.Error("fetch cart failed", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	if s.generation == gen {
		s.items = cloneItems(items)
	}
	s.mu.Unlock()
}

func (s *Store) lookupPrice(productID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Product.ID == productID {
			return item.Product.Price, true
		}
	}
	return 0, false
}

func cloneItems(items []api.LineItem) []api.LineItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.LineItem, len(items))
	copy(dup, items)
	return dup
}
