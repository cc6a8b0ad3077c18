// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package capture

import (
	"bytes"
	"net/http"
)

// ResponseWriter is a decorator around [http.ResponseWriter] that buffers
// the entire response produced by the downstream handler instead of writing
// it through immediately.
//
// The handler writes status, headers, and body as usual; nothing reaches the
// real client until [ResponseWriter.FlushToClient] runs, which forwards the
// recorded status and the buffered body exactly once, in original order,
// regardless of how many Write calls the handler made. In parallel, a
// bounded Recorder retains the capped prefix of the body for logging.
//
// ResponseWriter ensures WriteHeader is honored exactly once: subsequent
// calls are silently ignored, mirroring the behaviour documented by the
// [http.ResponseWriter] interface.
type ResponseWriter struct {
	http.ResponseWriter

	// status is the HTTP status code recorded on the first WriteHeader
	// call. It is zero until WriteHeader (or an implicit WriteHeader via
	// Write) is called.
	status int

	// wroteHeader reports whether WriteHeader has already been called.
	wroteHeader bool

	// body accumulates every byte of every Write call, in order. It is the
	// real data path: FlushToClient sends it to the client verbatim.
	body bytes.Buffer

	// rec is the bounded capture view of the body used by the logging
	// path; it never affects what the client receives.
	rec *Recorder

	// flushed guards FlushToClient against running twice.
	flushed bool
}

// NewResponseWriter wraps w, capturing body bytes into rec.
func NewResponseWriter(w http.ResponseWriter, rec *Recorder) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, rec: rec}
}

// WriteHeader records the status code for the deferred flush. If WriteHeader
// has already been called for this response, the call is a no-op and
// statusCode is ignored.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
}

// Write buffers b for the deferred flush and records it into the bounded
// capture view.
//
// If WriteHeader has not been called before Write, it implicitly calls
// WriteHeader with [http.StatusOK], matching the behaviour of the standard
// library's response writer. Write never fails; errors can only surface when
// the buffered content is flushed to the real writer.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	w.body.Write(b)
	w.rec.Record(b)
	return len(b), nil
}

// Status returns the recorded status code, defaulting to 200 when the
// handler wrote a body without an explicit WriteHeader, and 0 when nothing
// was written at all.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the total number of buffered body bytes.
func (w *ResponseWriter) Size() int {
	return w.body.Len()
}

// Recorder returns the bounded capture view of the response body.
func (w *ResponseWriter) Recorder() *Recorder {
	return w.rec
}

// FlushToClient forwards the recorded status code and the complete buffered
// body to the underlying writer. It runs at most once; later calls are
// no-ops. The returned error is the underlying writer's, if any.
func (w *ResponseWriter) FlushToClient() error {
	if w.flushed {
		return nil
	}
	w.flushed = true

	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(status)

	if w.body.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.body.Bytes())
	return err
}
