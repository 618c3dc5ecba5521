// Package client talks to the KONGENGA API and bootstraps the CLI's local
// SQLite database.
//
// The Client interface is the transport contract consumed by the session
// store; HTTPClient implements it over JSON/HTTP with bearer tokens.
//
// Errors: transport failures wrap ErrUnavailable, 401 answers match
// ErrUnauthorized, and every non-2xx answer is an *APIError carrying the
// backend's detail (or message) text.
package client
