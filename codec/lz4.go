package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4 implements Codec for the lz4 frame format.
type Lz4 struct {
}

var _ Codec = Lz4{}

func (c Lz4) NewDecoder(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(src)), nil
}

func (c Lz4) NewEncoder(dst io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(dst), nil
}

func (c Lz4) Ext() string {
	return ".lz4"
}
