package capture

import (
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DecodeText converts raw payload bytes to a string using the charset
// parameter of contentType. UTF-8 is the default; an unknown or broken
// charset never fails, the raw bytes are returned as-is instead.
func DecodeText(raw []byte, contentType string) string {
	name := charsetOf(contentType)
	if name == "" || name == "utf-8" {
		return string(raw)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return string(raw)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// charsetOf extracts the lower-cased charset parameter from a Content-Type
// value, or "" when the header carries none.
func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}
