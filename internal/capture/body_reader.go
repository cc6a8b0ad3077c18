package capture

import "io"

// BodyReader is a pass-through wrapper around a request body that tees every
// byte the handler actually reads into a bounded Recorder.
//
// The handler stays in full control of consumption: a body the handler never
// reads is never captured, and the bytes the handler sees are exactly the
// bytes of the original stream.
type BodyReader struct {
	src io.ReadCloser
	rec *Recorder
}

// NewBodyReader wraps src so reads are observed by rec.
func NewBodyReader(src io.ReadCloser, rec *Recorder) *BodyReader {
	return &BodyReader{src: src, rec: rec}
}

// Read reads from the original body and records whatever came back before
// handing it to the caller unchanged.
func (r *BodyReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 {
		r.rec.Record(p[:n])
	}
	return n, err
}

// Close closes the original body.
func (r *BodyReader) Close() error {
	return r.src.Close()
}
