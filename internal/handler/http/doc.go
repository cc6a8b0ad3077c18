// Package http implements the blocking variant of the observability
// pipeline as standard net/http middleware.
//
// The middleware resolves a per-request correlation id, attaches a
// request-scoped logger, and, for requests selected by the capture policy,
// tees the request body and buffers the response so both can be logged
// after the wrapped handler returns without disturbing the real data path.
package http
