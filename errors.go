package xtar

import (
	"errors"

	"github.com/nguyengg/xtar/archive"
)

// Sentinel errors for archive operations. Use errors.Is in callers.
var (
	// ErrInvalidTarget means the destination archive path names an existing directory.
	ErrInvalidTarget = errors.New("destination must not be a directory")
	// ErrInvalidSource means the archive to be read is not a regular file.
	ErrInvalidSource = errors.New("source must be a regular file")
	// ErrInvalidBase means the base directory does not exist or is not a directory.
	ErrInvalidBase = errors.New("base path must be a directory")
	// ErrEmptyInput means no files or directories were given to be archived.
	ErrEmptyInput = errors.New("no file or directory to archive")
	// ErrAbsolutePath means one of the files or directories to be archived is an absolute path.
	ErrAbsolutePath = errors.New("absolute path is not permitted")
	// ErrInvalidDestination means the directory to extract into exists but is not a directory.
	ErrInvalidDestination = errors.New("destination must be a directory")
	// ErrUnsafePath means an entry in the archive would be extracted outside the destination directory.
	ErrUnsafePath = errors.New("entry path escapes destination directory")
)

// ErrCorruptArchive is re-exported from archive.
//
// It is returned when the tar container or its compression stream is malformed; the underlying cause is also wrapped.
var ErrCorruptArchive = archive.ErrCorrupt
