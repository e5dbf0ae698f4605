package xtar

import (
	"fmt"
	"iter"
	"os"
)

// Walk returns an iterator over the given roots and all of their descendants, depth-first.
//
// Each root is yielded before its descendants. Within a directory, entries are visited in lexical order with files
// first followed by subdirectories, so every directory is yielded before any of its contents. Only real directories are
// descended into; symlinks to directories are yielded but not followed.
//
// Child paths are formed by appending the separator and the child's name to the parent path verbatim so that a prefix
// shared by all roots is preserved in every yielded path.
//
// ErrEmptyInput is returned if roots is empty. An error from reading the file system is yielded once and ends the
// iteration. The returned iterator can be ranged over multiple times.
func Walk(roots []string) (iter.Seq2[string, error], error) {
	if len(roots) == 0 {
		return nil, ErrEmptyInput
	}

	return func(yield func(string, error) bool) {
		for _, root := range roots {
			if !walk(root, yield) {
				return
			}
		}
	}, nil
}

func walk(path string, yield func(string, error) bool) bool {
	fi, err := os.Lstat(path)
	if err != nil {
		yield(path, fmt.Errorf(`stat "%s" error: %w`, path, err))
		return false
	}

	if !yield(path, nil) {
		return false
	}

	if !fi.IsDir() {
		return true
	}

	des, err := os.ReadDir(path)
	if err != nil {
		yield(path, fmt.Errorf(`read directory "%s" error: %w`, path, err))
		return false
	}

	prefix := path
	if !os.IsPathSeparator(path[len(path)-1]) {
		prefix += string(os.PathSeparator)
	}

	// os.ReadDir returns entries sorted by name already.
	for _, d := range des {
		if !d.IsDir() && !yield(prefix+d.Name(), nil) {
			return false
		}
	}

	for _, d := range des {
		if d.IsDir() && !walk(prefix+d.Name(), yield) {
			return false
		}
	}

	return true
}
