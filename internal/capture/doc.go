// Package capture provides non-destructive request/response body buffering
// for the blocking execution model.
//
// A bounded Recorder retains at most the configured number of payload bytes
// for logging; BodyReader tees what the handler actually reads from the
// request body into a Recorder, and ResponseWriter buffers everything the
// handler writes, flushing it to the real client exactly once on completion.
// The real data path always sees the payload byte for byte.
package capture
