// Package server runs the demo service's HTTP transport.
//
// It provides lifecycle orchestration for the HTTP server: startup, signal
// handling, and graceful shutdown.
package server
