// Package cart provides the client-side cart store.
//
// # Overview
//
// The store mirrors a server-persisted cart. It never maintains cart state
// independently of the backend: every mutation is one HTTP call followed by
// a refetch of the canonical cart, and the snapshot views render is always
// server-derived.
//
// # Phase Machine
//
// Each mutation runs the same cycle:
//
//	Idle → Mutating → Refetching → Idle
//
//	AddItem/RemoveItem/UpdateQuantity/Clear:
//	┌──────────────────────────────────────────────┐
//	│ begin()        claim the gate or drop        │
//	│ mutate call    POST/PUT/DELETE, errors logged│
//	│ refetch()      GET /orders/cart, replace     │
//	│ finish()       back to Idle, always          │
//	└──────────────────────────────────────────────┘
//
// The gate provides mutual exclusion within one store instance: at most one
// mutate-then-refetch sequence is in flight. A mutation arriving while the
// phase is not Idle returns immediately with no observable effect: dropped,
// not queued, not retried. The phase always returns to Idle regardless of
// which calls failed.
//
// # Consistency Policy
//
// The refetch runs whether or not the mutate call succeeded, favoring
// eventual UI consistency over surfacing every transient failure. Mutate and
// fetch failures are logged and never rolled back or retried. UpdateQuantity
// is the exception: it returns an error message for the caller to surface.
//
// UpdateQuantity looks the price up in the in-memory snapshot rather than
// refetching it; the backend expects {quantity, price} on line updates. An
// unknown product id logs a warning and skips the mutate call rather than
// fabricate a price, but still refetches.
//
// # Session Coupling
//
// The store holds no token. It subscribes to session token transitions:
// a token appearing triggers a fetch of the user's persisted cart, a token
// disappearing clears the snapshot locally with no network call. A
// generation counter invalidates fetches that were in flight when the
// session ended, so a stale response cannot repopulate a cleared cart.
//
// # Concurrency
//
// Methods are safe for concurrent use; Bubble Tea commands invoke them from
// separate goroutines. The mutex is held only around snapshot and phase
// bookkeeping, never across network I/O.
package cart
