package codec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd implements Codec for zstd compression algorithm.
type Zstd struct {
	// Level is the zstd compression level (1-22). The zero value means zstd.SpeedDefault.
	Level int
	// Concurrency customises the number of encoder goroutines. The zero value uses the library default.
	Concurrency int
}

var _ Codec = Zstd{}

func (c Zstd) NewDecoder(src io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader error: %w", err)
	}

	return dec.IOReadCloser(), nil
}

func (c Zstd) NewEncoder(dst io.Writer) (io.WriteCloser, error) {
	level := zstd.SpeedDefault
	if c.Level != 0 {
		level = zstd.EncoderLevelFromZstd(c.Level)
	}

	opts := []zstd.EOption{zstd.WithEncoderLevel(level)}
	if c.Concurrency > 0 {
		opts = append(opts, zstd.WithEncoderConcurrency(c.Concurrency))
	}

	w, err := zstd.NewWriter(dst, opts...)
	if err != nil {
		return nil, fmt.Errorf("create zstd writer error: %w", err)
	}

	return w, nil
}

func (c Zstd) Ext() string {
	return ".zst"
}
