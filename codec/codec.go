// Package codec contains the stream compression algorithms that can be layered underneath a tar archive.
package codec

import (
	"io"
	"strings"

	"github.com/nguyengg/xtar/util"
)

// Codec has methods to create compressor/encoder and decompressor/decoder.
type Codec interface {
	// NewDecoder creates a decoder to decompress contents from the given io.Reader.
	//
	// Closing the decoder does not close src.
	NewDecoder(src io.Reader) (io.ReadCloser, error)
	// NewEncoder creates an encoder to compress contents to the given io.Writer.
	//
	// The encoder must be closed to flush all pending data; closing it does not close dst.
	NewEncoder(dst io.Writer) (io.WriteCloser, error)
	// Ext returns the extension of files compressed with this codec, such as ".gz".
	Ext() string
}

// FromName returns the Codec identified by the given algorithm name.
//
// "none" and "tar" are valid names that return a nil Codec, meaning the archive is not compressed. The boolean return
// value is false only if the name is not recognised.
func FromName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "", "none", "tar":
		return nil, true
	case "gzip", "gz", "tgz":
		return Gzip{}, true
	case "zstd", "zst":
		return Zstd{}, true
	case "xz":
		return Xz{}, true
	case "lz4":
		return Lz4{}, true
	default:
		return nil, false
	}
}

// FromExt uses the extension of the given file name to determine the codec.
//
// A plain ".tar" returns a nil Codec and true. The boolean return value is false if the extension is not recognised.
func FromExt(name string) (Codec, bool) {
	_, ext := util.StemAndExt(name)
	return fromExt(ext)
}

func fromExt(ext string) (Codec, bool) {
	switch ext = strings.ToLower(ext); ext {
	case "":
		return nil, false
	case ".tar":
		return nil, true
	case ".tgz":
		return Gzip{}, true
	}

	// for ".tar.gz" and friends, only the last extension matters.
	if i := strings.LastIndexByte(ext, '.'); i > 0 {
		ext = ext[i:]
	}

	switch ext {
	case ".gz":
		return Gzip{}, true
	case ".zst":
		return Zstd{}, true
	case ".xz":
		return Xz{}, true
	case ".lz4":
		return Lz4{}, true
	default:
		return nil, false
	}
}
