// Package client contains the transport layer of the userdeck CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the user directory backend: Authenticate, ListPage, GetOne,
//     Update, and Remove.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that reads
//     the persisted bearer credential through a CredentialSource on every
//     call, stamps each request with a generated request ID, and maps HTTP
//     status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite credential store and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound,
// ErrInvalidCredentials.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and the configured per-request
// timeout.
package client
