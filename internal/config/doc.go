// Package config provides configuration loading and merging facilities for
// the request-logging pipeline and the demo server built on top of it.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources only fill fields the earlier ones left unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// Option values are not validated: unknown log levels fall back to a default
// at emission time and malformed path patterns simply never match.
//
// The main entry point is [GetStructuredConfig]; the pipeline itself consumes
// the flattened, immutable [Settings] produced by
// [StructuredConfig.LoggingSettings].
package config
