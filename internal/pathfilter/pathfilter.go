// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

// Package pathfilter decides whether a request participates in capture.
//
// Two independent checks: Ant-style include/exclude glob sets matched
// against the request path (with the routing prefix stripped), and a
// User-Agent prefix check that drops well-known infrastructure probes.
package pathfilter

import (
	"strings"

	"github.com/gobwas/glob"
)

// Filter holds the compiled, immutable capture policy. Patterns are
// compiled once at startup; a Filter is safe for concurrent use.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob

	// hasInclude remembers whether include patterns were configured at
	// all. A malformed pattern is dropped at compile time, but it still
	// restricts capture: an include set of only malformed patterns must
	// suppress everything, not fall open.
	hasInclude bool

	basePath      string
	skipAgents    bool
	agentPrefixes []string
}

// Options configures a Filter.
type Options struct {
	// IncludePatterns, when non-empty, restricts capture to matching
	// paths. Ant-style: `**` crosses path segments, `*` and `?` stay
	// within one.
	IncludePatterns []string

	// ExcludePatterns suppresses matching paths and wins over
	// IncludePatterns.
	ExcludePatterns []string

	// BasePath is the routing prefix stripped from the path before
	// matching.
	BasePath string

	// SkipHealthCheckAgents enables the probe User-Agent check.
	SkipHealthCheckAgents bool

	// HealthCheckUserAgentPrefixes are matched case-insensitively against
	// the start of the request's User-Agent.
	HealthCheckUserAgentPrefixes []string
}

// New compiles the pattern sets. A pattern that fails to compile is dropped
// and therefore never matches; configuration is not validated.
func New(opts Options) *Filter {
	prefixes := make([]string, 0, len(opts.HealthCheckUserAgentPrefixes))
	for _, p := range opts.HealthCheckUserAgentPrefixes {
		prefixes = append(prefixes, strings.ToLower(p))
	}

	return &Filter{
		include:       compile(opts.IncludePatterns),
		exclude:       compile(opts.ExcludePatterns),
		hasInclude:    len(opts.IncludePatterns) > 0,
		basePath:      opts.BasePath,
		skipAgents:    opts.SkipHealthCheckAgents,
		agentPrefixes: prefixes,
	}
}

func compile(patterns []string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			continue // malformed patterns never match
		}
		out = append(out, g)
	}
	return out
}

// ShouldCapture reports whether a request with the given path and
// User-Agent participates in capture.
func (f *Filter) ShouldCapture(path, userAgent string) bool {
	if f.IsHealthCheckAgent(userAgent) {
		return false
	}
	return f.MatchesPath(path)
}

// MatchesPath applies only the include/exclude pattern policy: a non-empty
// include set must match, and any exclude match suppresses regardless of
// includes.
func (f *Filter) MatchesPath(path string) bool {
	path = f.stripBase(path)

	if f.hasInclude && !matchAny(f.include, path) {
		return false
	}
	if matchAny(f.exclude, path) {
		return false
	}
	return true
}

// IsHealthCheckAgent reports whether userAgent belongs to a configured
// infrastructure probe. Independent of the path policy.
func (f *Filter) IsHealthCheckAgent(userAgent string) bool {
	if !f.skipAgents || userAgent == "" {
		return false
	}

	agent := strings.ToLower(userAgent)
	for _, prefix := range f.agentPrefixes {
		if strings.HasPrefix(agent, prefix) {
			return true
		}
	}
	return false
}

func (f *Filter) stripBase(path string) string {
	if f.basePath == "" {
		return path
	}
	stripped := strings.TrimPrefix(path, f.basePath)
	if stripped == "" {
		return "/"
	}
	return stripped
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
