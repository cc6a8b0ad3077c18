package capture

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Byte-exact delivery ----

func TestResponseWriter_ChunkedWritesArriveConcatenatedOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	chunks := []string{"first ", "second ", "third"}
	for _, c := range chunks {
		n, err := w.Write([]byte(c))
		require.NoError(t, err)
		require.Equal(t, len(c), n)
	}
	require.NoError(t, w.FlushToClient())

	want := strings.Join(chunks, "")
	assert.Equal(t, want, rr.Body.String(), "client receives exactly the concatenation, no loss or duplication")
	assert.Equal(t, want, string(w.Recorder().Bytes()))
	assert.Equal(t, len(want), w.Size())
}

func TestResponseWriter_NothingReachesClientBeforeFlush(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("buffered"))

	assert.Empty(t, rr.Body.String())

	require.NoError(t, w.FlushToClient())
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "buffered", rr.Body.String())
}

func TestResponseWriter_FlushToClientRunsOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	_, _ = w.Write([]byte("once"))
	require.NoError(t, w.FlushToClient())
	require.NoError(t, w.FlushToClient())

	assert.Equal(t, "once", rr.Body.String())
}

// ---- Status handling ----

func TestResponseWriter_WriteHeaderHonoredOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK) // ignored

	require.NoError(t, w.FlushToClient())
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, http.StatusTeapot, w.Status())
}

func TestResponseWriter_ImplicitOKOnWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	_, _ = w.Write([]byte("body"))

	assert.Equal(t, http.StatusOK, w.Status())
	require.NoError(t, w.FlushToClient())
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_EmptyResponseFlushesStatusOnly(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(1000))

	require.NoError(t, w.FlushToClient())

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

// ---- Capture bounding ----

func TestResponseWriter_CaptureBoundedButDeliveryComplete(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(4))

	payload := strings.Repeat("z", 20)
	_, _ = w.Write([]byte(payload))
	require.NoError(t, w.FlushToClient())

	assert.Equal(t, payload, rr.Body.String(), "full payload always reaches the client")
	assert.Equal(t, "zzzz", string(w.Recorder().Bytes()))
	assert.Equal(t, "zzzz... [16 bytes omitted]", w.Recorder().Text(""))
}

// ---- Headers set by the handler survive the deferred flush ----

func TestResponseWriter_HeadersForwarded(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, NewRecorder(100))

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
	require.NoError(t, w.FlushToClient())

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
