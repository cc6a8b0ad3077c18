// Package utils provides general-purpose helper utilities shared by the
// logging pipeline and the demo server: HTTP response writing, client
// address resolution, and event id generation.
package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller address of r.
//
// Proxy headers are consulted first: the first entry of X-Forwarded-For,
// then X-Real-IP. Without either, the host part of RemoteAddr is returned.
// Values are taken as-is; this module does not verify proxy trust.
func ClientIP(r *http.Request) string {
	return ClientIPFrom(r.Header, r.RemoteAddr)
}

// ClientIPFrom applies the same resolution to a bare header map and remote
// address, for transports not built on *http.Request.
func ClientIPFrom(h http.Header, remoteAddr string) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(h.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
