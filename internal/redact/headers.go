// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package redact

import (
	"net/http"
	"strings"
)

// maskedHeaderValue replaces the value of every sensitive header.
const maskedHeaderValue = "*****"

// HeaderRedactor replaces the values of configured sensitive headers with a
// fixed placeholder. Matching is case-insensitive on the header name; all
// other headers pass through untouched.
type HeaderRedactor struct {
	sensitive map[string]struct{}
}

// NewHeaderRedactor builds a redactor for the given header names. The name
// set is resolved once; the redactor is safe for concurrent use.
func NewHeaderRedactor(names []string) *HeaderRedactor {
	sensitive := make(map[string]struct{}, len(names))
	for _, name := range names {
		sensitive[strings.ToLower(name)] = struct{}{}
	}
	return &HeaderRedactor{sensitive: sensitive}
}

// Redact flattens h into a name → value map suitable for logging.
// Multi-valued headers are joined with ", "; sensitive headers are replaced
// with the masked placeholder.
func (r *HeaderRedactor) Redact(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}

	out := make(map[string]string, len(h))
	for name, values := range h {
		if _, ok := r.sensitive[strings.ToLower(name)]; ok {
			out[name] = maskedHeaderValue
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}
