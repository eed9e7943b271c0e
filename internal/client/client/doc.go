// Package client talks to the contact-directory backend over HTTP.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): identity,
//     login/signup/logout, contact listing and mutations, picture download and
//     CSV export.
//  2. A concrete implementation (see RESTClient) built on resty. It keeps the
//     session cookie in a cookie jar, bounds every call with a timeout, tags
//     each request with an X-Request-ID and maps responses to sentinel errors.
//
// # Error Handling
//
// Transport failures and timeouts map to ErrUnavailable. Non-success
// responses are returned as *APIError, which unwraps to ErrUnauthorized,
// ErrNotFound, ErrValidation, ErrUnavailable or ErrUnexpectedStatus and
// carries the message extracted from the body (see ExtractMessage).
//
// # Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
