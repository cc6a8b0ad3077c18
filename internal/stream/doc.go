// Package stream provides non-destructive body capture for the cooperative
// execution model, where request and response payloads travel as chunk
// sequences (<-chan []byte) through a continuation chain instead of being
// read on a dedicated worker goroutine.
//
// CachedBody consolidates a once-consumable inbound chunk sequence exactly
// once and replays it to any number of later subscribers; Tap observes an
// outbound chunk sequence on its way to the transport, retaining a bounded
// copy for logging without touching the bytes actually transmitted.
//
// Channel receive is the suspension point of this model: goroutines park
// instead of spinning, and many requests share few threads.
package stream
