package xtar

import (
	"context"
	"fmt"
	"io"

	"github.com/nguyengg/xtar/archive"
	"github.com/nguyengg/xtar/codec"
)

// TarLs is the equivalent of `tar tf src`.
//
// The names are returned in the order they are stored in the archive; directories have a trailing slash.
func TarLs(ctx context.Context, src string) ([]string, error) {
	return List(ctx, src)
}

// TarGzLs is the equivalent of `tar ztf src`.
func TarGzLs(ctx context.Context, src string) ([]string, error) {
	return List(ctx, src, func(opts *Options) {
		opts.Codec = codec.Gzip{}
	})
}

// List returns the display names of the entries in the src archive.
//
// ErrInvalidSource is returned if src is not a regular file.
func List(ctx context.Context, src string, optFns ...func(*Options)) ([]string, error) {
	entries, err := ListEntries(ctx, src, optFns...)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.DisplayName()
	}

	return names, nil
}

// ListEntries is a variant of List that returns the entries themselves instead of their display names.
func ListEntries(ctx context.Context, src string, optFns ...func(*Options)) ([]archive.Entry, error) {
	f, err := openSource(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := list(ctx, src, f, newOptions(optFns))
	if err != nil {
		return nil, fmt.Errorf(`list "%s" error: %w`, src, err)
	}

	return entries, nil
}

// ListFrom returns the entries of the archive read from the given io.Reader in the order they are stored.
func ListFrom(ctx context.Context, src io.Reader, optFns ...func(*Options)) ([]archive.Entry, error) {
	return list(ctx, "", src, newOptions(optFns))
}

func list(ctx context.Context, name string, src io.Reader, opts *Options) ([]archive.Entry, error) {
	src, err := opts.detect(ctx, name, src)
	if err != nil {
		return nil, err
	}

	files, err := archive.Tar{Codec: opts.Codec}.Open(src)
	if err != nil {
		return nil, err
	}

	entries := make([]archive.Entry, 0)
	for f, err := range files {
		if err != nil {
			return nil, err
		}

		if err = ctx.Err(); err != nil {
			return nil, err
		}

		entries = append(entries, f.Entry)
		opts.onEntry(f.Entry)
	}

	return entries, nil
}
