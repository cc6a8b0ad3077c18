// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

// Package flow implements the cooperative variant of the observability
// pipeline over chunk-stream exchanges.
//
// Where the blocking variant wraps net/http readers and writers, this one
// wraps channel-based bodies: suspension happens on channel receives, so a
// small number of goroutines can serve many in-flight exchanges. The
// request record is emitted before the handler produces content; the
// response record fires in a finally-equivalent continuation exactly once,
// whether the exchange completes, errors, or is cancelled, and the
// handler's outcome is observed but never altered.
package flow

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgetanalyzer/service-common-sub000/internal/config"
	"github.com/budgetanalyzer/service-common-sub000/internal/correlation"
	"github.com/budgetanalyzer/service-common-sub000/internal/emit"
	"github.com/budgetanalyzer/service-common-sub000/internal/logger"
	"github.com/budgetanalyzer/service-common-sub000/internal/pathfilter"
	"github.com/budgetanalyzer/service-common-sub000/internal/stream"
	"github.com/budgetanalyzer/service-common-sub000/internal/utils"
	"github.com/budgetanalyzer/service-common-sub000/models"
)

// Handler is one stage of the cooperative chain. Returning an error signals
// failure to the transport; the pipeline observes it without altering it.
type Handler func(ctx context.Context, ex *Exchange) error

// Pipeline is the cooperative observability pipeline. Like its blocking
// counterpart it carries only immutable, once-resolved state and serves any
// number of concurrent exchanges.
type Pipeline struct {
	cfg     config.Settings
	log     *logger.Logger
	filter  *pathfilter.Filter
	emitter *emit.Emitter
}

func NewPipeline(cfg config.Settings, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		log: log,
		filter: pathfilter.New(pathfilter.Options{
			IncludePatterns:              cfg.IncludePatterns,
			ExcludePatterns:              cfg.ExcludePatterns,
			BasePath:                     cfg.BasePath,
			SkipHealthCheckAgents:        cfg.SkipHealthCheckAgents,
			HealthCheckUserAgentPrefixes: cfg.HealthCheckUserAgentPrefixes,
		}),
		emitter: emit.NewEmitter(cfg),
	}
}

// Wrap decorates next with correlation propagation and, where the capture
// policy allows, record emission around the exchange. next is invoked
// exactly once; its error is returned unchanged.
func (p *Pipeline) Wrap(next Handler) Handler {
	return func(ctx context.Context, ex *Exchange) error {
		id := correlation.ExtractOrGenerate(ex.Header)
		correlation.Attach(id, ex.ResponseHeader())

		l := p.log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("correlation_id", id)
		})
		ctx = l.WithContext(correlation.WithID(ctx, id))

		if !p.cfg.Enabled || !p.filter.ShouldCapture(ex.Path, ex.Header.Get("User-Agent")) {
			return next(ctx, ex)
		}

		return p.capture(ctx, ex, next, id)
	}
}

// capture emits the request record, runs next, and schedules the response
// record. When the handler produced a body, the record waits for the tap to
// see the full stream (or for cancellation); otherwise it fires inline.
func (p *Pipeline) capture(ctx context.Context, ex *Exchange, next Handler, id string) error {
	p.emitter.EmitRequest(ctx, p.requestRecord(ex, id))

	start := time.Now()
	err := next(ctx, ex)

	var once sync.Once
	finally := func(tap *stream.Tap) {
		once.Do(func() {
			p.emitter.EmitResponse(ctx, p.responseRecord(ex, id, tap, start, err))
		})
	}

	if err != nil || ex.respBody == nil {
		finally(nil)
		return err
	}

	tap := stream.NewTap(p.cfg.MaxBodySize)
	ex.respBody = tap.Observe(ex.respBody)

	go func() {
		select {
		case <-tap.Done():
		case <-ctx.Done():
		}
		finally(tap)
	}()

	return nil
}

func (p *Pipeline) requestRecord(ex *Exchange, id string) *models.LogRecord {
	record := &models.LogRecord{
		EventID:       p.emitter.NewEventID(),
		CorrelationID: id,
		Direction:     models.DirectionRequest,
		Method:        ex.Method,
		URI:           ex.Path,
	}

	if p.cfg.IncludeRequestHeaders {
		record.Headers = p.emitter.RedactHeaders(ex.Header)
	}
	if p.cfg.IncludeQueryParams {
		record.QueryString = ex.Query
	}
	if p.cfg.IncludeClientIP {
		record.ClientIP = utils.ClientIPFrom(ex.Header, ex.RemoteAddr)
	}
	if p.cfg.IncludeRequestBody && ex.Body != nil {
		record.Body = ex.Body.Text(p.cfg.MaxBodySize, ex.Header.Get("Content-Type"))
	}

	return record
}

func (p *Pipeline) responseRecord(ex *Exchange, id string, tap *stream.Tap, start time.Time, err error) *models.LogRecord {
	record := &models.LogRecord{
		EventID:       p.emitter.NewEventID(),
		CorrelationID: id,
		Direction:     models.DirectionResponse,
		Method:        ex.Method,
		URI:           ex.Path,
		Status:        p.resolveStatus(ex, err),
		DurationMs:    time.Since(start).Milliseconds(),
	}

	if p.cfg.IncludeResponseHeaders {
		record.Headers = p.emitter.RedactHeaders(ex.ResponseHeader())
	}
	if p.cfg.IncludeResponseBody && tap != nil {
		record.Body = p.responseBody(ex.ResponseHeader(), tap)
	}

	return record
}

// resolveStatus falls back to 500 for a failed exchange that never
// responded, and to 200 for a completed one, so errors-only suppression and
// severity escalation always have a status to work with.
func (p *Pipeline) resolveStatus(ex *Exchange, err error) int {
	if status := ex.Status(); status != 0 {
		return status
	}
	if err != nil {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

func (p *Pipeline) responseBody(h http.Header, tap *stream.Tap) string {
	if encoding := h.Get("Content-Encoding"); emit.IsKnownEncoding(encoding) {
		return emit.EncodedPlaceholder(encoding, tap.Len())
	}
	return tap.Text(h.Get("Content-Type"))
}
