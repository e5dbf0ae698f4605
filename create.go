package xtar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
	"github.com/nguyengg/xtar/util"
)

// Tar is the equivalent of `tar cf dst src...`.
//
// The src paths must be relative. The dst file is created or truncated.
func Tar(ctx context.Context, dst string, src ...string) error {
	return Create(ctx, dst, src)
}

// TarGz is the equivalent of `tar zcf dst src...`.
func TarGz(ctx context.Context, dst string, src ...string) error {
	return Create(ctx, dst, src, func(opts *Options) {
		opts.Codec = codec.Gzip{}
	})
}

// CdTar archives the src paths relative to the base directory.
//
// Unlike `tar -C base cf dst src...`, the dst path is relative to the current working directory, not base. The src
// paths are relative to base, and the entries in the archive do not have base as prefix.
func CdTar(ctx context.Context, base, dst string, src ...string) error {
	return Create(ctx, dst, src, func(opts *Options) {
		opts.BaseDir = base
	})
}

// CdTarGz is the gzip variant of CdTar.
func CdTarGz(ctx context.Context, base, dst string, src ...string) error {
	return Create(ctx, dst, src, func(opts *Options) {
		opts.BaseDir = base
		opts.Codec = codec.Gzip{}
	})
}

// Create creates the dst archive from the given files and directories.
//
// ErrInvalidTarget is returned if dst is an existing directory. ErrEmptyInput is returned if src is empty,
// ErrAbsolutePath if any of the src paths is absolute, and ErrInvalidBase if Options.BaseDir is given but is not a
// directory; in these cases dst is never created.
//
// Any other error aborts the operation immediately and dst may be left with partial contents.
func Create(ctx context.Context, dst string, src []string, optFns ...func(*Options)) (err error) {
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		return fmt.Errorf(`create archive "%s" error: %w`, dst, ErrInvalidTarget)
	}

	opts := newOptions(optFns)
	if err = validate(src, opts.BaseDir); err != nil {
		return fmt.Errorf(`create archive "%s" error: %w`, dst, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf(`create archive "%s" error: %w`, dst, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf(`close archive "%s" error: %w`, dst, cerr)
		}
	}()

	c := &creator{opts: opts}
	if c.self, err = f.Stat(); err != nil {
		return fmt.Errorf(`stat archive "%s" error: %w`, dst, err)
	}

	return c.create(ctx, f, src)
}

// CreateTo is a variant of Create that writes the archive to the given io.Writer.
func CreateTo(ctx context.Context, dst io.Writer, src []string, optFns ...func(*Options)) error {
	opts := newOptions(optFns)
	if err := validate(src, opts.BaseDir); err != nil {
		return fmt.Errorf("create archive error: %w", err)
	}

	return (&creator{opts: opts}).create(ctx, dst, src)
}

func validate(src []string, base string) error {
	if len(src) == 0 {
		return ErrEmptyInput
	}

	for _, s := range src {
		if filepath.IsAbs(s) {
			return fmt.Errorf(`"%s": %w`, s, ErrAbsolutePath)
		}
	}

	if base != "" {
		if fi, err := os.Stat(base); err != nil || !fi.IsDir() {
			return fmt.Errorf(`"%s": %w`, base, ErrInvalidBase)
		}
	}

	return nil
}

type creator struct {
	opts *Options
	add  archive.AddFunction
	buf  []byte
	// self is the archive being written; it is skipped if found in the walk.
	self os.FileInfo
}

func (c *creator) create(ctx context.Context, dst io.Writer, src []string) (err error) {
	roots := make([]string, len(src))
	for i, s := range src {
		roots[i] = joinBase(c.opts.BaseDir, s)
	}

	paths, err := Walk(roots)
	if err != nil {
		return err
	}

	add, closer, err := archive.Tar{Codec: c.opts.Codec}.Create(dst)
	if err != nil {
		return fmt.Errorf("create archive writer error: %w", err)
	}
	defer func() {
		if cerr := closer(); err == nil && cerr != nil {
			err = fmt.Errorf("close archive writer error: %w", cerr)
		}
	}()

	c.add = add
	c.buf = make([]byte, c.opts.BufferSize)

	for path, err := range paths {
		if err != nil {
			return err
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		if err = c.addPath(ctx, path); err != nil {
			return err
		}
	}

	return nil
}

// addPath adds the named file or directory to the archive.
//
// Like `tar`, symlinks are followed when determining whether path is a directory, a regular file, or neither. Entries
// that are neither are silently skipped.
func (c *creator) addPath(ctx context.Context, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf(`stat file "%s" error: %w`, path, err)
	}

	if c.self != nil && os.SameFile(fi, c.self) {
		return nil
	}

	e := archive.NewEntry(Resolve(c.opts.BaseDir, path), fi)

	switch {
	case fi.IsDir():
		if _, err = c.add(e); err != nil {
			return fmt.Errorf(`add directory "%s" to archive error: %w`, path, err)
		}

	case fi.Mode().IsRegular():
		if err = c.addFile(ctx, path, e); err != nil {
			return err
		}

	default:
		return nil
	}

	c.opts.onEntry(e)
	return nil
}

func (c *creator) addFile(ctx context.Context, path string, e archive.Entry) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf(`open file "%s" error: %w`, path, err)
	}
	defer src.Close()

	w, err := c.add(e)
	if err != nil {
		return fmt.Errorf(`add file "%s" to archive error: %w`, path, err)
	}

	if c.opts.ProgressBar != nil {
		w = io.MultiWriter(w, c.opts.ProgressBar)
	}

	if _, err = util.CopyBufferWithContext(ctx, w, src, c.buf); err != nil {
		return fmt.Errorf(`copy file "%s" to archive error: %w`, path, err)
	}

	return nil
}
