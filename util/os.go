package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// OpenExclFile creates a new file for writing with the condition that the file did not exist prior to this call.
//
// The name is split with StemAndExt so that "archive.tar.gz" becomes "archive-1.tar.gz" rather than
// "archive.tar-1.gz" if "archive.tar.gz" already exists, and so on with "archive-2.tar.gz".
//
// The file is opened with flag `os.O_RDWR|os.O_CREATE|os.O_EXCL`. Caller is responsible for closing the file upon a
// successful return.
func OpenExclFile(name string, perm os.FileMode) (file *os.File, err error) {
	parent := filepath.Dir(name)
	stem, ext := StemAndExt(name)

	for i := 0; ; {
		switch file, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, perm); {
		case err == nil:
			return
		case errors.Is(err, os.ErrExist):
			i++
			name = filepath.Join(parent, stem+"-"+strconv.Itoa(i)+ext)
		default:
			return nil, fmt.Errorf(`create file "%s" error: %w`, name, err)
		}
	}
}
