package emit

import (
	"fmt"
	"strings"
)

// knownEncodings are compression schemes this pipeline refuses to inspect.
// Encoded response bodies are never decompressed for logging; a placeholder
// noting the scheme and the captured byte count stands in for the payload.
var knownEncodings = map[string]struct{}{
	"gzip":     {},
	"deflate":  {},
	"br":       {},
	"zstd":     {},
	"compress": {},
}

// EncodedPlaceholder returns the body placeholder for an encoded response,
// e.g. "[gzip encoded, 5120 bytes]".
func EncodedPlaceholder(encoding string, size int) string {
	return fmt.Sprintf("[%s encoded, %d bytes]", encoding, size)
}

// IsKnownEncoding reports whether a Content-Encoding value names a
// compression scheme from the known set. Multi-valued encodings count when
// their first token is known.
func IsKnownEncoding(contentEncoding string) bool {
	first, _, _ := strings.Cut(contentEncoding, ",")
	_, ok := knownEncodings[strings.ToLower(strings.TrimSpace(first))]
	return ok
}
