package xtar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
	"github.com/nguyengg/xtar/util"
)

// Untar is the equivalent of `tar -C dir -xf src`.
func Untar(ctx context.Context, src, dir string) error {
	return Extract(ctx, src, dir)
}

// UntarGz is the equivalent of `tar -C dir -zxf src`.
func UntarGz(ctx context.Context, src, dir string) error {
	return Extract(ctx, src, dir, func(opts *Options) {
		opts.Codec = codec.Gzip{}
	})
}

// Extract extracts the contents of the src archive into the dir directory.
//
// ErrInvalidSource is returned if src is not a regular file. Entries are extracted in the order they are stored:
// directories are created along with any missing parents, and files are created or truncated. File modes and
// modification times are restored; directory modes and modification times are restored once all entries have been
// extracted.
//
// ErrInvalidDestination is returned if dir exists but is not a directory; a missing dir is created along with the
// first entry.
//
// ErrUnsafePath is returned for any entry whose name is absolute or contains ".." that would escape dir, and for any
// entry whose path under dir already passes through a symlink, since writing through it could land outside dir.
// Entries extracted before the error are not removed.
func Extract(ctx context.Context, src, dir string, optFns ...func(*Options)) error {
	f, err := openSource(src)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = extract(ctx, src, f, dir, newOptions(optFns)); err != nil {
		return fmt.Errorf(`extract "%s" error: %w`, src, err)
	}

	return nil
}

// ExtractFrom is a variant of Extract that reads the archive from the given io.Reader.
func ExtractFrom(ctx context.Context, src io.Reader, dir string, optFns ...func(*Options)) error {
	return extract(ctx, "", src, dir, newOptions(optFns))
}

func extract(ctx context.Context, name string, src io.Reader, dir string, opts *Options) error {
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		return fmt.Errorf(`"%s": %w`, dir, ErrInvalidDestination)
	}

	src, err := opts.detect(ctx, name, src)
	if err != nil {
		return err
	}

	files, err := archive.Tar{Codec: opts.Codec}.Open(src)
	if err != nil {
		return err
	}

	x := &extractor{opts: opts, dir: dir, buf: make([]byte, opts.BufferSize)}

	for f, err := range files {
		if err != nil {
			return err
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		if err = x.extract(ctx, f); err != nil {
			return err
		}

		opts.onEntry(f.Entry)
	}

	return x.finish()
}

type dirMeta struct {
	path    string
	mode    os.FileMode
	modTime time.Time
}

type extractor struct {
	opts *Options
	dir  string
	buf  []byte
	// dirs are remembered in archive order so their modes can be applied after their contents have been extracted.
	dirs []dirMeta
}

func (x *extractor) extract(ctx context.Context, f *archive.File) error {
	if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
		return fmt.Errorf(`entry "%s": %w`, f.Name, ErrUnsafePath)
	}

	if err := x.noSymlink(f.Name); err != nil {
		return err
	}

	path := filepath.Join(x.dir, filepath.FromSlash(f.Name))

	if f.IsDir() {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf(`create directory "%s" error: %w`, path, err)
		}

		x.dirs = append(x.dirs, dirMeta{path: path, mode: f.Mode, modTime: f.ModTime})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf(`create path to file "%s" error: %w`, path, err)
	}

	w, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode.Perm())
	if err != nil {
		return fmt.Errorf(`create file "%s" error: %w`, path, err)
	}

	var dst io.Writer = w
	if x.opts.ProgressBar != nil {
		dst = io.MultiWriter(w, x.opts.ProgressBar)
	}

	_, err = util.CopyBufferWithContext(ctx, dst, f, x.buf)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf(`write to file "%s" error: %w`, path, err)
	}

	// the umask may have dropped some bits from OpenFile.
	if err = os.Chmod(path, f.Mode); err != nil {
		return fmt.Errorf(`change mode of "%s" error: %w`, path, err)
	}

	if err = os.Chtimes(path, time.Time{}, f.ModTime); err != nil {
		return fmt.Errorf(`change mod time of "%s" error: %w`, path, err)
	}

	return nil
}

// noSymlink returns ErrUnsafePath if any existing component of the slash-separated name under dir is a symlink.
func (x *extractor) noSymlink(name string) error {
	path := x.dir
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." {
			continue
		}

		path = filepath.Join(path, part)

		fi, err := os.Lstat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return fmt.Errorf(`stat "%s" error: %w`, path, err)
		case fi.Mode()&os.ModeSymlink != 0:
			return fmt.Errorf(`entry "%s" passes through symlink "%s": %w`, name, path, ErrUnsafePath)
		}
	}

	return nil
}

// finish applies modes and modification times to directories, deepest first.
func (x *extractor) finish() error {
	for i := len(x.dirs) - 1; i >= 0; i-- {
		d := x.dirs[i]

		if err := os.Chmod(d.path, d.mode); err != nil {
			return fmt.Errorf(`change mode of "%s" error: %w`, d.path, err)
		}

		if err := os.Chtimes(d.path, time.Time{}, d.modTime); err != nil {
			return fmt.Errorf(`change mod time of "%s" error: %w`, d.path, err)
		}
	}

	return nil
}

// openSource opens the named archive for reading, returning ErrInvalidSource if it is not a regular file.
func openSource(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	switch {
	case err != nil:
		return nil, fmt.Errorf(`open archive "%s" error: %w: %w`, name, ErrInvalidSource, err)
	case !fi.Mode().IsRegular():
		return nil, fmt.Errorf(`open archive "%s" error: %w`, name, ErrInvalidSource)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf(`open archive "%s" error: %w`, name, err)
	}

	return f, nil
}
