// Package client talks to the bookstore REST service.
//
// # Overview
//
//  1. Dispatcher is the one shared HTTP configuration. It resolves paths
//     against the normalized base URL, attaches the bearer token read from
//     the credential store on every request, stamps X-Request-Id, and runs
//     the unauthorized hook on any 401 answer.
//  2. API wraps the Dispatcher with typed methods for each endpoint: auth,
//     catalog, cart and orders, profile, wishlist, reviews, admin.
//  3. InitDatabase and RunMigrations open the client-local SQLite database
//     that backs the credential store.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *APIError
// values whose Message is the service's "error" text; they unwrap to
// ErrUnauthorized, ErrForbidden, ErrNotFound or ErrUnavailable by status.
// Inputs rejected before sending wrap models.ErrValidation.
package client
