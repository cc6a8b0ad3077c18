// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Logging holds every option recognized by the request-logging
	// pipeline. Boolean and integer fields are pointers so the merge step
	// can distinguish "explicitly set to false/zero" from "unset".
	Logging Logging `envPrefix:"LOGGING_"`

	// Server holds network address and timeout settings for the demo
	// HTTP server embedding the pipeline.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Logging is the layered form of the request-logging options. It is merged
// across sources and then flattened into [Settings] for runtime use.
type Logging struct {
	// Enabled turns request/response capture on. Off by default; services
	// opt in explicitly. Env: LOGGING_ENABLED
	Enabled *bool `env:"ENABLED" json:"enabled,omitempty"`

	// Level is the base severity for emitted records, one of
	// TRACE/DEBUG/INFO/WARN/ERROR. Unrecognized values silently fall back
	// to DEBUG at emission time. Env: LOGGING_LEVEL
	Level string `env:"LEVEL" json:"level,omitempty"`

	// IncludeRequestBody controls capture of inbound payloads.
	// Env: LOGGING_INCLUDE_REQUEST_BODY
	IncludeRequestBody *bool `env:"INCLUDE_REQUEST_BODY" json:"include_request_body,omitempty"`

	// IncludeResponseBody controls capture of outbound payloads.
	// Env: LOGGING_INCLUDE_RESPONSE_BODY
	IncludeResponseBody *bool `env:"INCLUDE_RESPONSE_BODY" json:"include_response_body,omitempty"`

	// IncludeRequestHeaders controls logging of (redacted) request headers.
	// Env: LOGGING_INCLUDE_REQUEST_HEADERS
	IncludeRequestHeaders *bool `env:"INCLUDE_REQUEST_HEADERS" json:"include_request_headers,omitempty"`

	// IncludeResponseHeaders controls logging of (redacted) response
	// headers. Env: LOGGING_INCLUDE_RESPONSE_HEADERS
	IncludeResponseHeaders *bool `env:"INCLUDE_RESPONSE_HEADERS" json:"include_response_headers,omitempty"`

	// IncludeQueryParams controls logging of the raw query string.
	// Env: LOGGING_INCLUDE_QUERY_PARAMS
	IncludeQueryParams *bool `env:"INCLUDE_QUERY_PARAMS" json:"include_query_params,omitempty"`

	// IncludeClientIP controls logging of the resolved client address.
	// Env: LOGGING_INCLUDE_CLIENT_IP
	IncludeClientIP *bool `env:"INCLUDE_CLIENT_IP" json:"include_client_ip,omitempty"`

	// MaxBodySize caps the number of body bytes retained for logging.
	// Content beyond the cap is dropped and marked as truncated; the real
	// request/response is never affected. Env: LOGGING_MAX_BODY_SIZE
	MaxBodySize *int `env:"MAX_BODY_SIZE" json:"max_body_size,omitempty"`

	// IncludePatterns, when non-empty, restricts capture to request paths
	// matching at least one of these Ant-style globs.
	// Env: LOGGING_INCLUDE_PATTERNS (comma-separated)
	IncludePatterns []string `env:"INCLUDE_PATTERNS" envSeparator:"," json:"include_patterns,omitempty"`

	// ExcludePatterns suppresses capture for matching paths; it wins over
	// IncludePatterns. Env: LOGGING_EXCLUDE_PATTERNS (comma-separated)
	ExcludePatterns []string `env:"EXCLUDE_PATTERNS" envSeparator:"," json:"exclude_patterns,omitempty"`

	// SensitiveHeaders lists header names (case-insensitive) whose values
	// are replaced with a masked placeholder before logging.
	// Env: LOGGING_SENSITIVE_HEADERS (comma-separated)
	SensitiveHeaders []string `env:"SENSITIVE_HEADERS" envSeparator:"," json:"sensitive_headers,omitempty"`

	// LogErrorsOnly suppresses records for responses below 400.
	// Env: LOGGING_LOG_ERRORS_ONLY
	LogErrorsOnly *bool `env:"LOG_ERRORS_ONLY" json:"log_errors_only,omitempty"`

	// SkipHealthCheckAgents suppresses capture for requests whose
	// User-Agent starts with one of HealthCheckUserAgentPrefixes.
	// Env: LOGGING_SKIP_HEALTH_CHECK_AGENTS
	SkipHealthCheckAgents *bool `env:"SKIP_HEALTH_CHECK_AGENTS" json:"skip_health_check_agents,omitempty"`

	// HealthCheckUserAgentPrefixes lists User-Agent prefixes
	// (case-insensitive) of infrastructure probes.
	// Env: LOGGING_HEALTH_CHECK_USER_AGENT_PREFIXES (comma-separated)
	HealthCheckUserAgentPrefixes []string `env:"HEALTH_CHECK_USER_AGENT_PREFIXES" envSeparator:"," json:"health_check_user_agent_prefixes,omitempty"`

	// BasePath is the routing prefix stripped from request paths before
	// pattern matching (e.g. "/budget-service").
	// Env: LOGGING_BASE_PATH
	BasePath string `env:"BASE_PATH" json:"base_path,omitempty"`
}

// Server holds network and timeout settings for the demo server.
type Server struct {
	// HTTPAddress is the TCP address the demo server listens on,
	// in "host:port" format. Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"http_address,omitempty"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request (e.g. "30s", "1m"). Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"-"`
}

// ptr returns a pointer to v, for populating the layered option fields.
func ptr[T any](v T) *T {
	return &v
}

// defaultConfig returns the built-in defaults, merged in as the lowest
// priority layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Logging: Logging{
			Enabled:                ptr(false),
			Level:                  "DEBUG",
			IncludeRequestBody:     ptr(true),
			IncludeResponseBody:    ptr(true),
			IncludeRequestHeaders:  ptr(true),
			IncludeResponseHeaders: ptr(true),
			IncludeQueryParams:     ptr(true),
			IncludeClientIP:        ptr(true),
			MaxBodySize:            ptr(10000),
			SensitiveHeaders: []string{
				"Authorization",
				"Cookie",
				"Set-Cookie",
				"X-Api-Key",
				"X-Auth-Token",
				"Proxy-Authorization",
				"WWW-Authenticate",
			},
			LogErrorsOnly:         ptr(false),
			SkipHealthCheckAgents: ptr(true),
			HealthCheckUserAgentPrefixes: []string{
				"kube-probe",
				"ELB-HealthChecker",
				"GoogleHC",
				"Prometheus",
			},
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// GetStructuredConfig loads and merges the application configuration from
// all sources. Priority: environment variables > flags > JSON file >
// defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
