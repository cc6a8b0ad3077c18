// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

// Package emit turns captured request/response observations into structured
// log records and decides their severity.
//
// Severity escalates with the response outcome regardless of the configured
// base level: 5xx responses log at ERROR, 4xx at WARN, everything else at
// the base level. In errors-only mode, records for responses below 400 are
// suppressed; request-phase records are suppressed entirely in that mode,
// since their outcome is not yet known when they would be written.
//
// A failure while building or writing a record is contained here: it is
// logged as a pipeline-internal warning and never reaches the wrapped
// request.
package emit

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/budgetanalyzer/service-common-sub000/internal/config"
	"github.com/budgetanalyzer/service-common-sub000/internal/logger"
	"github.com/budgetanalyzer/service-common-sub000/internal/redact"
	"github.com/budgetanalyzer/service-common-sub000/internal/utils"
	"github.com/budgetanalyzer/service-common-sub000/models"
)

// ParseLevel resolves a configured level name (TRACE/DEBUG/INFO/WARN/ERROR,
// any case) to a zerolog level. Unrecognized names silently fall back to
// DEBUG; configuration is not validated.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return level
}

// SeverityFor returns the record severity for a response status given the
// configured base level.
func SeverityFor(status int, base zerolog.Level) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return base
	}
}

// Emitter writes request/response log records through the request-scoped
// logger carried in the context. It is built once from resolved settings
// and shared read-only across requests.
type Emitter struct {
	cfg      config.Settings
	headers  *redact.HeaderRedactor
	base     zerolog.Level
	eventIDs *utils.UUIDGenerator
}

// NewEmitter resolves the emission policy from cfg.
func NewEmitter(cfg config.Settings) *Emitter {
	return &Emitter{
		cfg:      cfg,
		headers:  redact.NewHeaderRedactor(cfg.SensitiveHeaders),
		base:     ParseLevel(cfg.Level),
		eventIDs: utils.NewUUIDGenerator(),
	}
}

// BaseLevel returns the resolved base severity.
func (e *Emitter) BaseLevel() zerolog.Level {
	return e.base
}

// NewEventID returns a fresh record identifier.
func (e *Emitter) NewEventID() string {
	return e.eventIDs.Generate()
}

// RedactHeaders flattens and redacts h for inclusion in a record.
func (e *Emitter) RedactHeaders(h map[string][]string) map[string]string {
	return e.headers.Redact(h)
}

// EmitRequest writes the request-phase record, unless errors-only mode is
// active, in which case request records are suppressed wholesale.
func (e *Emitter) EmitRequest(ctx context.Context, rec *models.LogRecord) {
	if e.cfg.LogErrorsOnly {
		return
	}
	e.write(ctx, e.base, rec, "http request")
}

// EmitResponse writes the response-phase record with outcome-driven
// severity. In errors-only mode, responses below 400 are suppressed.
func (e *Emitter) EmitResponse(ctx context.Context, rec *models.LogRecord) {
	if e.cfg.LogErrorsOnly && rec.Status < 400 {
		return
	}
	e.write(ctx, SeverityFor(rec.Status, e.base), rec, "http response")
}

// write serializes rec at the given severity. Any panic while formatting or
// writing is recovered and reported as a pipeline-internal warning; it never
// propagates to the wrapped request.
func (e *Emitter) write(ctx context.Context, level zerolog.Level, rec *models.LogRecord, msg string) {
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Any("panic", r).Msg("failed to emit log record")
		}
	}()

	ev := log.WithLevel(level).
		Str("event_id", rec.EventID).
		Str("correlation_id", rec.CorrelationID).
		Str("direction", string(rec.Direction))

	if rec.Method != "" {
		ev = ev.Str("method", rec.Method)
	}
	if rec.URI != "" {
		ev = ev.Str("uri", rec.URI)
	}
	if rec.Direction == models.DirectionResponse {
		ev = ev.Int("status", rec.Status).Int64("duration_ms", rec.DurationMs)
	}
	if len(rec.Headers) > 0 {
		ev = ev.Any("headers", rec.Headers)
	}
	if rec.QueryString != "" {
		ev = ev.Str("query", rec.QueryString)
	}
	if rec.ClientIP != "" {
		ev = ev.Str("client_ip", rec.ClientIP)
	}
	if rec.Body != "" {
		ev = ev.Str("body", rec.Body)
	}

	ev.Msg(msg)
}
