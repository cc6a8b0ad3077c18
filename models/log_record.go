package models

// Direction tells which leg of the exchange a log record describes.
type Direction string

const (
	// DirectionRequest marks the inbound, request-phase record.
	DirectionRequest Direction = "request"

	// DirectionResponse marks the outbound, response-phase record.
	DirectionResponse Direction = "response"
)

// LogRecord is one request- or response-phase observation produced by the
// logging pipeline. Records are emitted to the structured log and never
// persisted by this module.
//
// Header values and the body are already redacted/truncated by the time a
// LogRecord is built; the record itself is safe to serialize anywhere.
type LogRecord struct {
	// EventID uniquely identifies this record.
	EventID string `json:"event_id"`

	// CorrelationID is the per-request token shared by both phases of one
	// exchange and returned to the caller in the response header.
	CorrelationID string `json:"correlation_id"`

	// Direction is the record phase, request or response.
	Direction Direction `json:"direction"`

	// Method is the HTTP method of the request.
	Method string `json:"method,omitempty"`

	// URI is the request path.
	URI string `json:"uri,omitempty"`

	// Status is the HTTP status code. Response phase only.
	Status int `json:"status,omitempty"`

	// DurationMs is the total processing time in milliseconds.
	// Response phase only.
	DurationMs int64 `json:"duration_ms,omitempty"`

	// Headers holds the redacted header map of this phase.
	Headers map[string]string `json:"headers,omitempty"`

	// QueryString is the raw query string of the request.
	QueryString string `json:"query,omitempty"`

	// ClientIP is the resolved caller address. Request phase only.
	ClientIP string `json:"client_ip,omitempty"`

	// Body is the captured payload text, truncated and marked when the
	// source exceeded the configured cap, or a placeholder when the
	// payload was content-encoded.
	Body string `json:"body,omitempty"`
}
