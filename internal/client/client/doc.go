// Package client talks to the travel diary backend.
//
// # Overview
//
// Client is the contract the sync services depend on; HTTPClient is the
// production implementation over net/http. Outbound calls are throttled
// with a token bucket and bounded by the caller's context.
//
// The backend answers several endpoints in more than one layout (a bare
// value, or an envelope {"result_code": 200, "data": ...}). Each endpoint
// has its own decoder that tries the accepted shapes in order and reports
// the one it matched in the returned value's Shape field.
//
// # Errors
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *StatusError,
// which also matches ErrNotFound (404) and ErrUnavailable (5xx) with
// errors.Is. Bodies that match no accepted shape wrap ErrUnexpectedResponse.
//
// # Local database
//
// InitDatabase and RunMigrations open the SQLite snapshot database and apply
// the embedded goose migrations.
package client
