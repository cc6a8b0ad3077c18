package capture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---- Bounded recording ----

func TestRecorder_WithinCap(t *testing.T) {
	rec := NewRecorder(100)
	rec.Record([]byte("hello "))
	rec.Record([]byte("world"))

	assert.Equal(t, "hello world", string(rec.Bytes()))
	assert.False(t, rec.Truncated())
	assert.Zero(t, rec.Omitted())
	assert.Equal(t, "hello world", rec.Text(""))
}

func TestRecorder_OverCap(t *testing.T) {
	rec := NewRecorder(5)
	rec.Record([]byte("abcdefghij"))

	assert.Equal(t, "abcde", string(rec.Bytes()))
	assert.True(t, rec.Truncated())
	assert.EqualValues(t, 5, rec.Omitted())
	assert.Equal(t, "abcde... [5 bytes omitted]", rec.Text(""))
}

func TestRecorder_CapSpansMultipleWrites(t *testing.T) {
	rec := NewRecorder(4)
	rec.Record([]byte("ab"))
	rec.Record([]byte("cd"))
	rec.Record([]byte("ef"))
	rec.Record([]byte("gh"))

	assert.Equal(t, "abcd", string(rec.Bytes()))
	assert.EqualValues(t, 4, rec.Omitted())
}

func TestRecorder_ZeroLimitRecordsNothing(t *testing.T) {
	rec := NewRecorder(0)
	rec.Record([]byte("abc"))

	assert.Empty(t, rec.Bytes())
	assert.EqualValues(t, 3, rec.Omitted())
}

func TestRecorder_MarkerIsDeterministic(t *testing.T) {
	build := func() string {
		rec := NewRecorder(3)
		rec.Record([]byte(strings.Repeat("x", 10)))
		return rec.Text("")
	}

	assert.Equal(t, build(), build())
}

// ---- Charset handling ----

func TestRecorder_TextUsesDeclaredCharset(t *testing.T) {
	rec := NewRecorder(100)
	rec.Record([]byte{0xE9, 0xE8}) // "éè" in latin-1

	assert.Equal(t, "éè", rec.Text("text/plain; charset=iso-8859-1"))
}

func TestDecodeText_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		raw         []byte
		contentType string
		want        string
	}{
		{
			name:        "no content type defaults to utf-8",
			raw:         []byte("plain"),
			contentType: "",
			want:        "plain",
		},
		{
			name:        "explicit utf-8",
			raw:         []byte("données"),
			contentType: "application/json; charset=UTF-8",
			want:        "données",
		},
		{
			name:        "latin-1 decoded",
			raw:         []byte{0xE9},
			contentType: "text/plain; charset=ISO-8859-1",
			want:        "é",
		},
		{
			name:        "unknown charset falls back to raw bytes",
			raw:         []byte("raw"),
			contentType: "text/plain; charset=made-up-charset",
			want:        "raw",
		},
		{
			name:        "malformed content type falls back to raw bytes",
			raw:         []byte("raw"),
			contentType: ";;;",
			want:        "raw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeText(tt.raw, tt.contentType))
		})
	}
}
