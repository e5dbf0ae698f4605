// Package archive reads and writes tar archives, optionally layered on top of a codec.Codec.
package archive

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"
)

// ErrCorrupt is returned when the archive or its compression stream is malformed.
var ErrCorrupt = errors.New("corrupt archive")

// Kind is the type of an Entry. An archive only ever contains files and directories.
type Kind int

const (
	// KindFile is a regular file with contents.
	KindFile Kind = iota
	// KindDir is a directory without contents.
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry describes a single file or directory in the archive.
type Entry struct {
	// Name is the slash-separated path of the entry in the archive, without a trailing slash for directories.
	Name string
	Kind Kind
	// Mode contains the permission bits as well as os.ModeSetuid, os.ModeSetgid, and os.ModeSticky.
	Mode    os.FileMode
	Size    int64
	ModTime time.Time
}

// NewEntry creates an Entry from the given os.FileInfo.
//
// The name is converted to use slash as separator. Any type other than directory is recorded as KindFile.
func NewEntry(name string, fi os.FileInfo) Entry {
	e := Entry{
		Name:    strings.TrimSuffix(toSlash(name), "/"),
		Kind:    KindFile,
		Mode:    fi.Mode() & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
	}

	if fi.IsDir() {
		e.Kind = KindDir
		e.Size = 0
	}

	return e
}

// IsDir returns true if the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// FileMode returns Mode with os.ModeDir set for directories.
func (e Entry) FileMode() os.FileMode {
	if e.Kind == KindDir {
		return e.Mode | os.ModeDir
	}

	return e.Mode
}

// DisplayName returns the name as tar(1) would list it: directories carry a trailing slash, files do not.
func (e Entry) DisplayName() string {
	if e.Kind == KindDir {
		return e.Name + "/"
	}

	return e.Name
}

// File is an entry being read from an archive.
//
// The embedded io.Reader returns the contents of the file and is only valid until the next iteration. Directories
// have no contents.
type File struct {
	Entry
	io.Reader
}

// AddFunction creates a new entry in the archive and returns the io.Writer to write the contents of the file.
//
// Exactly Entry.Size bytes must be written for a file before the next call to AddFunction or CloseFunction. Nothing
// may be written for a directory.
type AddFunction func(e Entry) (io.Writer, error)

// CloseFunction closes the archive, flushing the tar trailer and the codec if there is one.
type CloseFunction func() error

func toSlash(name string) string {
	if os.PathSeparator == '/' {
		return name
	}

	return strings.ReplaceAll(name, string(os.PathSeparator), "/")
}
