// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgetanalyzer/service-common-sub000/internal/capture"
	"github.com/budgetanalyzer/service-common-sub000/internal/config"
	"github.com/budgetanalyzer/service-common-sub000/internal/correlation"
	"github.com/budgetanalyzer/service-common-sub000/internal/emit"
	"github.com/budgetanalyzer/service-common-sub000/internal/logger"
	"github.com/budgetanalyzer/service-common-sub000/internal/pathfilter"
	"github.com/budgetanalyzer/service-common-sub000/internal/utils"
	"github.com/budgetanalyzer/service-common-sub000/models"
)

// Pipeline is the blocking observability pipeline. It is built once from
// resolved settings and holds only immutable state; all per-request buffers
// live in the middleware closure, so one Pipeline serves any number of
// concurrent requests.
type Pipeline struct {
	cfg     config.Settings
	log     *logger.Logger
	filter  *pathfilter.Filter
	emitter *emit.Emitter
}

func NewPipeline(cfg config.Settings, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		log:     log,
		filter:  pathfilter.New(filterOptions(cfg)),
		emitter: emit.NewEmitter(cfg),
	}
}

func filterOptions(cfg config.Settings) pathfilter.Options {
	return pathfilter.Options{
		IncludePatterns:              cfg.IncludePatterns,
		ExcludePatterns:              cfg.ExcludePatterns,
		BasePath:                     cfg.BasePath,
		SkipHealthCheckAgents:        cfg.SkipHealthCheckAgents,
		HealthCheckUserAgentPrefixes: cfg.HealthCheckUserAgentPrefixes,
	}
}

// Middleware wraps next with correlation propagation and, where the capture
// policy allows, body capture and record emission.
//
// The correlation id is resolved and attached to the response header for
// every request, captured or not, so downstream stages and callers can rely
// on it unconditionally. next is invoked exactly once.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := correlation.ExtractOrGenerate(r.Header)
		correlation.Attach(id, w.Header())

		l := p.log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("correlation_id", id)
		})

		ctx := correlation.WithID(r.Context(), id)
		r = r.WithContext(l.WithContext(ctx))

		if !p.cfg.Enabled || !p.filter.ShouldCapture(r.URL.Path, r.UserAgent()) {
			next.ServeHTTP(w, r)
			return
		}

		p.capture(w, r, next, id)
	})
}

// capture runs next with the request body teed and the response buffered,
// then flushes the response and emits both records. The records are written
// after next returns: the request body is only observable once the handler
// has read it.
func (p *Pipeline) capture(w http.ResponseWriter, r *http.Request, next http.Handler, id string) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	reqRec := capture.NewRecorder(p.cfg.MaxBodySize)
	if p.cfg.IncludeRequestBody && r.Body != nil {
		r.Body = capture.NewBodyReader(r.Body, reqRec)
	}

	respRec := capture.NewRecorder(p.cfg.MaxBodySize)
	cw := capture.NewResponseWriter(w, respRec)

	start := time.Now()
	next.ServeHTTP(cw, r)
	duration := time.Since(start)

	if err := cw.FlushToClient(); err != nil {
		log.Warn().Err(err).Msg("failed to flush buffered response")
	}

	p.emitter.EmitRequest(ctx, p.requestRecord(r, id, reqRec))
	p.emitter.EmitResponse(ctx, p.responseRecord(r, id, cw, duration))
}

func (p *Pipeline) requestRecord(r *http.Request, id string, rec *capture.Recorder) *models.LogRecord {
	record := &models.LogRecord{
		EventID:       p.emitter.NewEventID(),
		CorrelationID: id,
		Direction:     models.DirectionRequest,
		Method:        r.Method,
		URI:           r.URL.Path,
	}

	if p.cfg.IncludeRequestHeaders {
		record.Headers = p.emitter.RedactHeaders(r.Header)
	}
	if p.cfg.IncludeQueryParams {
		record.QueryString = r.URL.RawQuery
	}
	if p.cfg.IncludeClientIP {
		record.ClientIP = utils.ClientIP(r)
	}
	if p.cfg.IncludeRequestBody {
		record.Body = rec.Text(r.Header.Get("Content-Type"))
	}

	return record
}

func (p *Pipeline) responseRecord(r *http.Request, id string, cw *capture.ResponseWriter, duration time.Duration) *models.LogRecord {
	status := cw.Status()
	if status == 0 {
		status = http.StatusOK
	}

	record := &models.LogRecord{
		EventID:       p.emitter.NewEventID(),
		CorrelationID: id,
		Direction:     models.DirectionResponse,
		Method:        r.Method,
		URI:           r.URL.Path,
		Status:        status,
		DurationMs:    duration.Milliseconds(),
	}

	if p.cfg.IncludeResponseHeaders {
		record.Headers = p.emitter.RedactHeaders(cw.Header())
	}
	if p.cfg.IncludeResponseBody {
		record.Body = p.responseBody(cw)
	}

	return record
}

// responseBody returns the loggable view of the buffered response. Encoded
// bodies are never decompressed; a placeholder naming the scheme and the
// full byte count stands in for the payload.
func (p *Pipeline) responseBody(cw *capture.ResponseWriter) string {
	if encoding := cw.Header().Get("Content-Encoding"); emit.IsKnownEncoding(encoding) {
		return emit.EncodedPlaceholder(encoding, cw.Size())
	}
	return cw.Recorder().Text(cw.Header().Get("Content-Type"))
}
