// Package api provides an HTTP client for the storefront backend.
//
// # Overview
//
// This package defines the typed REST client used by the session and cart
// stores and by the UI's catalog, checkout, profile, and admin views. It
// handles HTTP communication, JSON serialization, bearer authentication, and
// type-safe representation of the backend's resources.
//
// # Endpoints
//
// The client covers the full backend surface:
//
//   - POST /auth/register, POST /auth/login: credential exchange
//   - GET/PUT /users/profile: identity read and update
//   - GET /products (+query), GET /products/:id: catalog browsing
//   - POST/PUT/DELETE /products[/:id]: admin product management
//   - GET /orders/cart, POST/PUT/DELETE /orders/cart/items[/:id],
//     DELETE /orders/cart: cart resource
//   - POST /orders: checkout
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a vitrine User-Agent
//   - Carry a fresh X-Request-ID (UUID) for backend log correlation
//   - Attach Authorization: Bearer <token> when a token is set
//   - Have a 10-second timeout via the underlying http.Client
//
// The token is held behind a mutex so the session store can swap it at
// runtime while requests are in flight.
//
// # Error Handling
//
// HTTP responses with status >= 400 yield *Error carrying the status code
// and the backend-supplied {message} body when present. Transport and decode
// failures are wrapped with fmt.Errorf context. Callers use IsStatus to
// recognize 401 (invalid token) and ErrorMessage to prefer the backend's
// message over a generic fallback, matching the forms' display policy.
//
// # Thread Safety
//
// The Client is safe for concurrent use. It performs no caching, no retries,
// and no request queueing; serialization of cart mutations is the cart
// store's concern, not the client's.
package api
