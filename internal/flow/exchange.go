// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package flow

import (
	"net/http"

	"github.com/budgetanalyzer/service-common-sub000/internal/stream"
)

// Exchange models one request/response round trip in the cooperative
// execution model. Bodies are chunk sequences rather than byte readers; the
// inbound body is wrapped in a [stream.CachedBody] so it stays re-readable
// after the handler consumed it.
//
// An Exchange belongs to exactly one request and is not safe for concurrent
// mutation; the transport that created it moves it through the chain.
type Exchange struct {
	Method     string
	Path       string
	Query      string
	Header     http.Header
	RemoteAddr string

	// Body is nil when the request carries no payload.
	Body *stream.CachedBody

	status     int
	responded  bool
	respHeader http.Header
	respBody   <-chan []byte
}

// NewExchange builds an Exchange for one inbound request. body may be nil;
// a non-nil body channel must eventually be closed by its producer.
func NewExchange(method, path string, body <-chan []byte) *Exchange {
	ex := &Exchange{
		Method:     method,
		Path:       path,
		Header:     http.Header{},
		respHeader: http.Header{},
	}
	if body != nil {
		ex.Body = stream.NewCachedBody(body)
	}
	return ex
}

// Respond sets the response outcome. Only the first call takes effect,
// mirroring WriteHeader semantics; body may be nil for empty responses and
// must otherwise be closed by its producer.
func (ex *Exchange) Respond(status int, body <-chan []byte) {
	if ex.responded {
		return
	}
	ex.responded = true
	ex.status = status
	ex.respBody = body
}

// ResponseHeader returns the outbound header map.
func (ex *Exchange) ResponseHeader() http.Header {
	return ex.respHeader
}

// Status returns the responded status, or 0 before Respond.
func (ex *Exchange) Status() int {
	return ex.status
}

// ResponseBody returns the outbound chunk sequence the transport should
// drain. After the observability pipeline ran, this is the tapped sequence;
// its content is forwarded unmodified.
func (ex *Exchange) ResponseBody() <-chan []byte {
	return ex.respBody
}
