package rw

import "io"

// CountWriter counts bytes passing through to the wrapped writer. The
// PDF canvas uses it to report output size without buffering twice.
type CountWriter struct {
	w io.Writer
	n int64
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: w}
}

func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n) // partial writes still count
	return n, err
}

func (cw *CountWriter) BytesWritten() int64 {
	return cw.n
}
