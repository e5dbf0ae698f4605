package codec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
)

// Gzip implements Codec for gzip compression algorithm.
//
// The stream is a standard RFC 1952 gzip stream regardless of Concurrency, so it can be read by gzip(1) and friends.
type Gzip struct {
	// Level is the compression level. The zero value means gzip.DefaultCompression.
	Level int
	// Concurrency if greater than 1 will compress blocks in parallel using pgzip.
	Concurrency int
}

var _ Codec = Gzip{}

func (c Gzip) NewDecoder(src io.Reader) (io.ReadCloser, error) {
	r, err := gzip.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create gzip reader error: %w", err)
	}

	return r, nil
}

func (c Gzip) NewEncoder(dst io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}

	if c.Concurrency > 1 {
		w, err := pgzip.NewWriterLevel(dst, level)
		if err != nil {
			return nil, fmt.Errorf("create pgzip writer error: %w", err)
		}

		if err = w.SetConcurrency(1<<20, c.Concurrency); err != nil {
			return nil, fmt.Errorf("set pgzip concurrency error: %w", err)
		}

		return w, nil
	}

	w, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		return nil, fmt.Errorf("create gzip writer error: %w", err)
	}

	return w, nil
}

func (c Gzip) Ext() string {
	return ".gz"
}
