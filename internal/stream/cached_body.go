// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Budget Analyzer contributors

package stream

import (
	"sync"

	"github.com/budgetanalyzer/service-common-sub000/internal/capture"
)

// TruncationMarker is the fixed marker appended to capped cooperative
// captures. Unlike the blocking variant it does not carry a byte count; the
// convention is fixed per execution model.
const TruncationMarker = "... [truncated]"

// CachedBody wraps a once-consumable inbound chunk sequence.
//
// The original sequence is joined into one consolidated buffer exactly once,
// on the first accessor call; every later Chunks call returns a fresh,
// independent sequence replaying the identical full content, so the logger
// and the real downstream consumer never interfere and the source is never
// re-consumed.
type CachedBody struct {
	src  <-chan []byte
	once sync.Once
	data []byte
}

// NewCachedBody wraps src. The source channel must be closed by its
// producer; joining suspends until then.
func NewCachedBody(src <-chan []byte) *CachedBody {
	return &CachedBody{src: src}
}

// join drains the source exactly once and concatenates its chunks.
func (b *CachedBody) join() {
	b.once.Do(func() {
		for chunk := range b.src {
			b.data = append(b.data, chunk...)
		}
	})
}

// Bytes returns the consolidated content, joining the source on first use.
// The returned slice is shared and must not be modified.
func (b *CachedBody) Bytes() []byte {
	b.join()
	return b.data
}

// Len returns the consolidated content length in bytes.
func (b *CachedBody) Len() int {
	b.join()
	return len(b.data)
}

// Chunks returns a fresh subscription to the cached content: a new channel
// carrying the full consolidated payload, then closing. Subscribing any
// number of times never re-triggers consumption of the original source.
func (b *CachedBody) Chunks() <-chan []byte {
	b.join()

	out := make(chan []byte, 1)
	if len(b.data) > 0 {
		out <- b.data
	}
	close(out)
	return out
}

// Text returns the cached content as text capped at limit bytes, decoded
// with the charset declared in contentType. Reading text never moves any
// shared position, so a logging read and a processing read cannot interfere.
// Content past the cap is replaced by the fixed truncation marker.
func (b *CachedBody) Text(limit int, contentType string) string {
	b.join()

	if limit >= 0 && len(b.data) > limit {
		return capture.DecodeText(b.data[:limit], contentType) + TruncationMarker
	}
	return capture.DecodeText(b.data, contentType)
}
