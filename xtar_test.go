package xtar

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fill creates the named file and all missing parents, then sets its exact mode regardless of umask.
func fill(t *testing.T, name, data string, mode os.FileMode) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
	require.NoError(t, os.WriteFile(name, []byte(data), mode))
	require.NoError(t, os.Chmod(name, mode))
}

type node struct {
	dir  bool
	mode os.FileMode
	data string
}

// readTree returns the files and directories under root keyed by their slash-separated relative paths.
func readTree(t *testing.T, root string) map[string]node {
	t.Helper()

	tree := make(map[string]node)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == root {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		n := node{dir: d.IsDir(), mode: fi.Mode().Perm()}
		if !n.dir {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			n.data = string(data)
		}

		tree[filepath.ToSlash(rel)] = n
		return nil
	})
	require.NoError(t, err)

	return tree
}

// sampleTree creates this structure under root:
//
//	a/x.txt (0644)
//	a/b/y.txt (0600)
//	a/b/c/z.sh (0755)
//	a/e/ (0700, empty)
//	f.txt (0640)
func sampleTree(t *testing.T, root string) {
	t.Helper()

	fill(t, filepath.Join(root, "a/x.txt"), "hello", 0644)
	fill(t, filepath.Join(root, "a/b/y.txt"), "world", 0600)
	fill(t, filepath.Join(root, "a/b/c/z.sh"), "#!/bin/sh\necho hi\n", 0755)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a/e"), 0700))
	require.NoError(t, os.Chmod(filepath.Join(root, "a/e"), 0700))
	fill(t, filepath.Join(root, "f.txt"), "", 0640)
}

var ctx = context.Background()
