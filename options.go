package xtar

import (
	"context"
	"io"

	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
	"github.com/schollz/progressbar/v3"
)

const defaultBufferSize = 32 * 1024

// Options customises Create, Extract, and List.
type Options struct {
	// Codec if given will be used to compress or decompress the tar stream.
	//
	// Tar and Untar use no codec, TarGz and UntarGz use codec.Gzip.
	Codec codec.Codec

	// DetectCodec if true and Codec is nil will sniff the archive contents to determine the codec. Only applicable to
	// Extract and List.
	//
	// See codec.Detect.
	DetectCodec bool

	// BaseDir if given is the directory that the source paths are relative to. Only applicable to Create.
	//
	// The source paths are joined to BaseDir for walking, while the entry names in the archive have the BaseDir prefix
	// removed.
	BaseDir string

	// ProgressBar if given will be used to provide progress report on the number of file content bytes copied.
	ProgressBar *progressbar.ProgressBar

	// OnEntry if given is called after every entry has been added, extracted, or listed.
	OnEntry func(e archive.Entry)

	// BufferSize customises the size of the buffer for copying file contents. Defaults to 32KiB.
	BufferSize int
}

func newOptions(optFns []func(*Options)) *Options {
	opts := &Options{BufferSize: defaultBufferSize}
	for _, fn := range optFns {
		fn(opts)
	}

	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}

	return opts
}

func (opts *Options) onEntry(e archive.Entry) {
	if opts.OnEntry != nil {
		opts.OnEntry(e)
	}
}

// detect sets Codec from the contents of src if DetectCodec is enabled, returning the io.Reader to continue from.
func (opts *Options) detect(ctx context.Context, name string, src io.Reader) (io.Reader, error) {
	if opts.Codec != nil || !opts.DetectCodec {
		return src, nil
	}

	c, r, err := codec.Detect(ctx, name, src)
	if err != nil {
		return nil, err
	}

	opts.Codec = c
	return r, nil
}
