// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package config

// Settings is the flat, fully-resolved form of [Logging] consumed by the
// pipeline components. It is built once at startup and never mutated
// afterwards; requests share it read-only.
type Settings struct {
	Enabled                      bool
	Level                        string
	IncludeRequestBody           bool
	IncludeResponseBody          bool
	IncludeRequestHeaders        bool
	IncludeResponseHeaders       bool
	IncludeQueryParams           bool
	IncludeClientIP              bool
	MaxBodySize                  int
	IncludePatterns              []string
	ExcludePatterns              []string
	SensitiveHeaders             []string
	LogErrorsOnly                bool
	SkipHealthCheckAgents        bool
	HealthCheckUserAgentPrefixes []string
	BasePath                     string
}

// LoggingSettings flattens the layered logging options into [Settings].
// Pointer fields that survived the merge unset (possible only when the
// defaults layer was skipped) resolve to their zero values.
func (cfg *StructuredConfig) LoggingSettings() Settings {
	l := cfg.Logging
	return Settings{
		Enabled:                      deref(l.Enabled),
		Level:                        l.Level,
		IncludeRequestBody:           deref(l.IncludeRequestBody),
		IncludeResponseBody:          deref(l.IncludeResponseBody),
		IncludeRequestHeaders:        deref(l.IncludeRequestHeaders),
		IncludeResponseHeaders:       deref(l.IncludeResponseHeaders),
		IncludeQueryParams:           deref(l.IncludeQueryParams),
		IncludeClientIP:              deref(l.IncludeClientIP),
		MaxBodySize:                  deref(l.MaxBodySize),
		IncludePatterns:              l.IncludePatterns,
		ExcludePatterns:              l.ExcludePatterns,
		SensitiveHeaders:             l.SensitiveHeaders,
		LogErrorsOnly:                deref(l.LogErrorsOnly),
		SkipHealthCheckAgents:        deref(l.SkipHealthCheckAgents),
		HealthCheckUserAgentPrefixes: l.HealthCheckUserAgentPrefixes,
		BasePath:                     l.BasePath,
	}
}

// DefaultSettings returns the flattened built-in defaults. Intended for
// services embedding the pipeline programmatically without the full
// env/flags/JSON loading step.
func DefaultSettings() Settings {
	return defaultConfig().LoggingSettings()
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
