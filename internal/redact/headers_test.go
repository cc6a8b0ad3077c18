package redact

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRedactor_TableTest(t *testing.T) {
	redactor := NewHeaderRedactor([]string{"Authorization", "X-Api-Key"})

	tests := []struct {
		name   string
		header http.Header
		want   map[string]string
	}{
		{
			name: "sensitive header masked",
			header: http.Header{
				"Authorization": {"Bearer abc123"},
				"Accept":        {"application/json"},
			},
			want: map[string]string{
				"Authorization": "*****",
				"Accept":        "application/json",
			},
		},
		{
			name: "matching is case-insensitive",
			header: http.Header{
				"AUTHORIZATION": {"Basic dXNlcjpwYXNz"},
				"x-api-key":     {"key-1"},
			},
			want: map[string]string{
				"AUTHORIZATION": "*****",
				"x-api-key":     "*****",
			},
		},
		{
			name: "multi-valued non-sensitive header joined",
			header: http.Header{
				"Accept-Encoding": {"gzip", "br"},
			},
			want: map[string]string{
				"Accept-Encoding": "gzip, br",
			},
		},
		{
			name: "multi-valued sensitive header fully masked",
			header: http.Header{
				"X-Api-Key": {"first", "second"},
			},
			want: map[string]string{
				"X-Api-Key": "*****",
			},
		},
		{
			name:   "empty header map",
			header: http.Header{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redactor.Redact(tt.header))
		})
	}
}

func TestHeaderRedactor_DefaultSensitiveSetStaysUntouched(t *testing.T) {
	redactor := NewHeaderRedactor(nil)

	out := redactor.Redact(http.Header{"Authorization": {"Bearer abc"}})

	assert.Equal(t, map[string]string{"Authorization": "Bearer abc"}, out,
		"a redactor without configured names must pass everything through")
}
