package codec

import (
	"context"
	"fmt"
	"io"

	"github.com/mholt/archives"
)

// Detect sniffs the first few bytes of src to determine the codec of a tar archive.
//
// Only the contents are sniffed; the name is the fallback via FromExt if the contents cannot be identified. The returned
// io.Reader must be used in place of src for subsequent reads since Detect may have consumed some bytes from src if src
// is not an io.Seeker.
func Detect(ctx context.Context, name string, src io.Reader) (Codec, io.Reader, error) {
	format, r, err := archives.Identify(ctx, "", src)
	if r == nil {
		r = src
	}

	if err == nil {
		if c, ok := fromExt(format.Extension()); ok {
			return c, r, nil
		}

		return nil, r, fmt.Errorf(`detect format of "%s" error: unsupported format "%s"`, name, format.Extension())
	}

	if ctx.Err() != nil {
		return nil, r, ctx.Err()
	}

	// archives.NoMatch, or the stream is too short to be identified.
	if c, ok := FromExt(name); ok {
		return c, r, nil
	}

	return nil, r, fmt.Errorf(`detect format of "%s" error: %w`, name, err)
}
