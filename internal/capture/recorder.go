// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package capture

import (
	"bytes"
	"fmt"
)

// Recorder is a bounded byte sink for captured payload content. It retains
// at most limit bytes; everything past the cap is counted but dropped, so a
// misbehaving payload can never grow the log-side buffer.
//
// A Recorder is request-scoped and not safe for concurrent use; in the
// blocking model all writes happen on the request's worker goroutine.
type Recorder struct {
	limit   int
	buf     bytes.Buffer
	omitted int64
}

// NewRecorder returns a Recorder retaining at most limit bytes.
// A non-positive limit records nothing and counts everything as omitted.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Record appends p to the buffer up to the cap. Bytes beyond the cap are
// counted in the omitted total.
func (r *Recorder) Record(p []byte) {
	room := r.limit - r.buf.Len()
	if room <= 0 {
		r.omitted += int64(len(p))
		return
	}
	if len(p) <= room {
		r.buf.Write(p)
		return
	}
	r.buf.Write(p[:room])
	r.omitted += int64(len(p) - room)
}

// Bytes returns the retained prefix. The slice is owned by the Recorder and
// must not be modified.
func (r *Recorder) Bytes() []byte {
	return r.buf.Bytes()
}

// Len returns the number of retained bytes.
func (r *Recorder) Len() int {
	return r.buf.Len()
}

// Omitted returns how many bytes were dropped past the cap.
func (r *Recorder) Omitted() int64 {
	return r.omitted
}

// Truncated reports whether the source exceeded the cap.
func (r *Recorder) Truncated() bool {
	return r.omitted > 0
}

// Text returns the retained content decoded with the charset declared in
// contentType (UTF-8 when absent or unresolvable). When the source exceeded
// the cap, a deterministic marker recording the omitted byte count is
// appended. The logging path may call Text any number of times.
func (r *Recorder) Text(contentType string) string {
	text := DecodeText(r.buf.Bytes(), contentType)
	if r.omitted > 0 {
		return fmt.Sprintf("%s... [%d bytes omitted]", text, r.omitted)
	}
	return text
}
