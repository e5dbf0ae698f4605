package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/nguyengg/xtar/codec"
	"github.com/nguyengg/xtar/util"
)

// blockSize is the size of a tar block; an archive ends with two zero blocks.
const blockSize = 512

// mode bits as defined by the tar format.
const (
	modeSetuid = 04000
	modeSetgid = 02000
	modeSticky = 01000
)

// Tar reads and writes tar archives.
//
// Tar is stateless and safe for concurrent use; the functions and iterators it returns are not.
type Tar struct {
	// Codec if given will be used to encode/decode contents with Create and Open.
	codec.Codec
}

// Create returns methods to write entries to the archive being created by writing to the given io.Writer.
//
// The close function must be called once all entries have been added; it does not close dst.
func (t Tar) Create(dst io.Writer) (add AddFunction, closer CloseFunction, err error) {
	var enc io.WriteCloser

	if t.Codec != nil {
		if enc, err = t.Codec.NewEncoder(dst); err != nil {
			return
		}
	} else {
		enc = &util.WriteNoopCloser{Writer: dst}
	}

	w := tar.NewWriter(enc)

	add = func(e Entry) (io.Writer, error) {
		if err := w.WriteHeader(header(e)); err != nil {
			return nil, fmt.Errorf(`write tar header for "%s" error: %w`, e.Name, err)
		}

		return w, nil
	}

	closer = util.ChainCloser(w.Close, enc.Close)

	return
}

// Open produces an iterator returning the entries from the archive read from the given io.Reader.
//
// Entries that are neither regular files nor directories (symlinks, devices, etc.) are skipped. Any error from reading
// the archive matches ErrCorrupt and wraps the underlying cause; once an error is yielded, the iterator stops. A stream
// that ends before the two zero blocks marking the end of the archive is reported as io.ErrUnexpectedEOF.
func (t Tar) Open(src io.Reader) (iter.Seq2[*File, error], error) {
	var dec io.ReadCloser

	if t.Codec != nil {
		r, err := t.Codec.NewDecoder(src)
		if err != nil {
			return nil, corrupt(err)
		}

		dec = r
	} else {
		dec = io.NopCloser(src)
	}

	cr := &corruptReader{r: dec}
	tr := tar.NewReader(cr)

	return func(yield func(*File, error) bool) {
		defer dec.Close()

		for {
			hdr, err := tr.Next()
			if err == io.EOF {
				// tar.Reader also returns io.EOF if the stream ends on a block boundary without the trailer.
				if !cr.complete() {
					yield(nil, corrupt(fmt.Errorf("read next tar entry error: %w", io.ErrUnexpectedEOF)))
					return
				}

				break
			}
			if err != nil {
				yield(nil, corrupt(fmt.Errorf("read next tar entry error: %w", err)))
				return
			}

			var kind Kind
			switch hdr.Typeflag {
			case tar.TypeDir:
				kind = KindDir
			case tar.TypeReg:
				kind = KindFile
			default:
				continue
			}

			if !yield(&File{
				Entry: Entry{
					Name:    strings.TrimSuffix(hdr.Name, "/"),
					Kind:    kind,
					Mode:    fileMode(hdr.Mode),
					Size:    hdr.Size,
					ModTime: hdr.ModTime,
				},
				Reader: &corruptReader{r: tr},
			}, nil) {
				return
			}
		}

		// drain the rest of the stream so that the codec gets a chance to verify its trailer and checksum.
		if _, err := io.Copy(io.Discard, cr); err != nil {
			yield(nil, corrupt(err))
		}
	}, nil
}

// ArchiveExt returns the extension of archives created with this Tar, such as ".tar.gz".
func (t Tar) ArchiveExt() string {
	if t.Codec != nil {
		return ".tar" + t.Codec.Ext()
	}

	return ".tar"
}

func header(e Entry) *tar.Header {
	hdr := &tar.Header{
		Name:     e.Name,
		Mode:     tarMode(e.Mode),
		ModTime:  e.ModTime,
		Typeflag: tar.TypeReg,
		Size:     e.Size,
	}

	if e.Kind == KindDir {
		hdr.Name = e.Name + "/"
		hdr.Typeflag = tar.TypeDir
		hdr.Size = 0
	}

	return hdr
}

func tarMode(m os.FileMode) int64 {
	mode := int64(m.Perm())
	if m&os.ModeSetuid != 0 {
		mode |= modeSetuid
	}
	if m&os.ModeSetgid != 0 {
		mode |= modeSetgid
	}
	if m&os.ModeSticky != 0 {
		mode |= modeSticky
	}

	return mode
}

func fileMode(mode int64) os.FileMode {
	m := os.FileMode(mode).Perm()
	if mode&modeSetuid != 0 {
		m |= os.ModeSetuid
	}
	if mode&modeSetgid != 0 {
		m |= os.ModeSetgid
	}
	if mode&modeSticky != 0 {
		m |= os.ModeSticky
	}

	return m
}

// corruptReader tags every read error other than io.EOF with ErrCorrupt.
//
// It also counts the bytes read and the length of the trailing run of zero bytes so that complete can tell whether the
// end-of-archive marker was read.
type corruptReader struct {
	r     io.Reader
	n     int64
	zeros int64
}

func (c *corruptReader) Read(p []byte) (n int, err error) {
	if n, err = c.r.Read(p); err != nil && err != io.EOF {
		err = corrupt(err)
	}

	c.n += int64(n)

	i := n
	for i > 0 && p[i-1] == 0 {
		i--
	}
	if i == 0 {
		c.zeros += int64(n)
	} else {
		c.zeros = int64(n - i)
	}

	return
}

// complete returns true if the stream read so far is whole blocks ending with the two zero blocks.
func (c *corruptReader) complete() bool {
	return c.n%blockSize == 0 && c.zeros >= 2*blockSize
}

func corrupt(err error) error {
	if errors.Is(err, ErrCorrupt) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrCorrupt, err)
}
