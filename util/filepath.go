package util

import "path/filepath"

// StemAndExt is a variant of filepath.Ext that detects multi-part extensions while also returning the stem.
//
// For example, `filepath.Ext("backup.tar.gz")` returns ".gz", but `StemAndExt("backup.tar.gz")` returns "backup" for
// the stem and ".tar.gz" for the extension.
//
// Each part of the extension must be 5 characters or fewer (not counting the dot), so if there is no `.` in the last 6
// characters, the returned ext is empty unlike filepath.Ext. That means "backup.tar.gz" has ".tar.gz" as extension but
// "notes.markdown" has none.
func StemAndExt(path string) (stem, ext string) {
	n := len(path) - 1
	for i, j := n, max(0, n-6); i >= j; i-- {
		switch path[i] {
		case '\\', '/':
			stem = path[i+1:]
			return
		case '.':
			ext = path[i:] + ext
			path = path[:i]
			n = len(path)
			i, j = n, max(0, n-6)
		}
	}

	stem = filepath.Base(path)
	return
}
