// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package stream

import (
	"sync"

	"github.com/budgetanalyzer/service-common-sub000/internal/capture"
)

// Tap observes an outbound chunk sequence on its way to the transport.
//
// Every chunk is forwarded completely unmodified, in order; a bounded copy
// of the content is retained on the side for logging. Once the cap is
// reached the tap keeps forwarding but stops copying, so it degrades to a
// pure observer and never applies backpressure beyond the downstream
// consumer's own pace.
type Tap struct {
	limit int

	mu        sync.Mutex
	buf       []byte
	truncated bool

	done chan struct{}
}

// NewTap returns a Tap retaining at most limit bytes.
func NewTap(limit int) *Tap {
	return &Tap{limit: limit, done: make(chan struct{})}
}

// Observe forwards src through a new channel, recording a bounded copy of
// each chunk as it passes. The returned channel closes when src closes,
// after which Done is signalled. Observe is meant to be called once per
// response stream.
func (t *Tap) Observe(src <-chan []byte) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(t.done)
		defer close(out)
		for chunk := range src {
			t.record(chunk)
			out <- chunk
		}
	}()
	return out
}

// record appends chunk to the bounded accumulator.
func (t *Tap) record(chunk []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	room := t.limit - len(t.buf)
	if room <= 0 {
		if len(chunk) > 0 {
			t.truncated = true
		}
		return
	}
	if len(chunk) <= room {
		t.buf = append(t.buf, chunk...)
		return
	}
	t.buf = append(t.buf, chunk[:room]...)
	t.truncated = true
}

// Done is closed once the observed stream has been fully forwarded.
func (t *Tap) Done() <-chan struct{} {
	return t.done
}

// Bytes returns a copy of the retained content.
func (t *Tap) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]byte, len(t.buf))
	copy(out, t.buf)
	return out
}

// Len returns the number of retained bytes.
func (t *Tap) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buf)
}

// Truncated reports whether content past the cap was observed.
func (t *Tap) Truncated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.truncated
}

// Text returns the retained content decoded with the charset declared in
// contentType, with the fixed truncation marker appended when content past
// the cap was observed.
func (t *Tap) Text(contentType string) string {
	t.mu.Lock()
	buf := t.buf
	truncated := t.truncated
	t.mu.Unlock()

	text := capture.DecodeText(buf, contentType)
	if truncated {
		return text + TruncationMarker
	}
	return text
}
