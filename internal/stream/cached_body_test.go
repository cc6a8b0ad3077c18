package stream

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkSource builds a closed channel carrying the given chunks and a
// counter of how many were consumed.
func chunkSource(chunks ...string) (<-chan []byte, *atomic.Int32) {
	consumed := &atomic.Int32{}
	ch := make(chan []byte, len(chunks))
	for _, c := range chunks {
		consumed.Add(1)
		ch <- []byte(c)
	}
	close(ch)
	return ch, consumed
}

func drain(ch <-chan []byte) []byte {
	var out []byte
	for chunk := range ch {
		out = append(out, chunk...)
	}
	return out
}

// ---- Consolidation ----

func TestCachedBody_JoinsChunksInOrder(t *testing.T) {
	src, _ := chunkSource("one ", "two ", "three")
	body := NewCachedBody(src)

	assert.Equal(t, "one two three", string(body.Bytes()))
	assert.Equal(t, 13, body.Len())
}

func TestCachedBody_EverySubscriberSeesFullContent(t *testing.T) {
	src, _ := chunkSource("alpha", "beta")
	body := NewCachedBody(src)

	first := drain(body.Chunks())
	second := drain(body.Chunks())
	third := drain(body.Chunks())

	assert.Equal(t, "alphabeta", string(first))
	assert.Equal(t, first, second, "logger and downstream must see identical content")
	assert.Equal(t, first, third)
}

func TestCachedBody_SourceConsumedExactlyOnce(t *testing.T) {
	calls := &atomic.Int32{}
	src := make(chan []byte)
	go func() {
		calls.Add(1)
		src <- []byte("payload")
		close(src)
	}()

	body := NewCachedBody(src)

	_ = body.Bytes()
	_ = drain(body.Chunks())
	_ = body.Text(100, "")

	assert.EqualValues(t, 1, calls.Load(), "re-subscription must never re-trigger the source")
}

func TestCachedBody_EmptySource(t *testing.T) {
	src, _ := chunkSource()
	body := NewCachedBody(src)

	assert.Empty(t, body.Bytes())
	assert.Empty(t, drain(body.Chunks()))
	assert.Empty(t, body.Text(10, ""))
}

// ---- Capped text accessor ----

func TestCachedBody_TextCapped(t *testing.T) {
	src, _ := chunkSource("0123456789")
	body := NewCachedBody(src)

	assert.Equal(t, "0123"+TruncationMarker, body.Text(4, ""))
}

func TestCachedBody_TextDoesNotDisturbSubscribers(t *testing.T) {
	src, _ := chunkSource("0123456789")
	body := NewCachedBody(src)

	_ = body.Text(4, "")

	assert.Equal(t, "0123456789", string(drain(body.Chunks())),
		"a capped logging read must not move any shared position")
}

func TestCachedBody_TextWithinLimitHasNoMarker(t *testing.T) {
	src, _ := chunkSource("short")
	body := NewCachedBody(src)

	assert.Equal(t, "short", body.Text(100, ""))
}

func TestCachedBody_TextDecodesCharset(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte{0xE9}
	close(ch)
	body := NewCachedBody(ch)

	assert.Equal(t, "é", body.Text(100, "text/plain; charset=iso-8859-1"))
}

// ---- Concurrent subscribers ----

func TestCachedBody_ConcurrentSubscribers(t *testing.T) {
	src, _ := chunkSource("concurrent-content")
	body := NewCachedBody(src)

	const n = 20
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			results <- string(drain(body.Chunks()))
		}()
	}

	for i := 0; i < n; i++ {
		require.Equal(t, "concurrent-content", <-results)
	}
}
