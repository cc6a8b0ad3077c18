// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

// Package correlation assigns and propagates the per-request correlation id.
//
// The id stitches together every log line emitted for one logical request.
// It is adopted verbatim from the inbound propagation header when present,
// generated otherwise, written back on the response, and threaded through the
// request via context.Context so the same value is visible in both the
// blocking and the chunk-stream execution models.
package correlation

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
)

// Header is the canonical propagation header, read from the inbound request
// and always written to the outbound response.
const Header = "X-Correlation-Id"

// idPrefix is the fixed prefix of every generated correlation id.
const idPrefix = "req-"

// ExtractOrGenerate resolves the correlation id for a request.
//
// If the propagation header carries a non-blank value it is adopted verbatim
// after trimming, with no format validation: a malformed inbound id is
// tolerated so that callers upstream of this service keep their own token.
// Otherwise a fresh id is generated. Never fails.
func ExtractOrGenerate(h http.Header) string {
	if v := strings.TrimSpace(h.Get(Header)); v != "" {
		return v
	}
	return Generate()
}

// Generate returns a new correlation id: the fixed prefix followed by
// 16 lowercase hex characters from a non-cryptographic random source.
// Correlation ids are operational tokens, not secrets.
func Generate() string {
	return fmt.Sprintf("%s%016x", idPrefix, rand.Uint64())
}

// Attach writes id to the propagation header of h. Only the propagation
// header is touched; all other headers are left as they are.
func Attach(id string, h http.Header) {
	h.Set(Header, id)
}

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that may
// use string-based keys in the context.
type contextKey string

// idCtxKey is the key under which the correlation id is stored in a request
// context.
var idCtxKey = contextKey("correlationID")

// WithID returns a child context carrying id. Every stage of a request's
// processing chain receives the id through this channel rather than through
// any ambient mutable state, so the value survives hops between goroutines.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idCtxKey, id)
}

// FromContext retrieves the correlation id stored in ctx.
//
// Returns the id and an ok flag:
//   - ok == true  - an id was attached to ctx via WithID
//   - ok == false - no id is present (e.g. processing outside the pipeline)
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idCtxKey).(string)
	return id, ok
}
