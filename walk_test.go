package xtar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	// tmpDir should look like this.
	//	a/x.txt
	//	a/b/y.txt
	//	a/b/c/z.txt
	//	a/w.txt
	//	d.txt
	tmpDir := t.TempDir()
	for _, name := range []string{"a/x.txt", "a/b/y.txt", "a/b/c/z.txt", "a/w.txt", "d.txt"} {
		fill(t, filepath.Join(tmpDir, name), name, 0644)
	}

	paths, err := Walk([]string{filepath.Join(tmpDir, "a"), filepath.Join(tmpDir, "d.txt")})
	require.NoError(t, err)

	expected := []string{
		"a",
		"a/w.txt",
		"a/x.txt",
		"a/b",
		"a/b/y.txt",
		"a/b/c",
		"a/b/c/z.txt",
		"d.txt",
	}

	// the iterator can be consumed more than once.
	for range 2 {
		actual := make([]string, 0)
		for path, err := range paths {
			require.NoError(t, err)
			actual = append(actual, filepath.ToSlash(Resolve(tmpDir, path)))
		}

		assert.Equal(t, expected, actual)
	}
}

func TestWalk_KeepsPrefix(t *testing.T) {
	tmpDir := t.TempDir()
	fill(t, filepath.Join(tmpDir, "a", "x.txt"), "x", 0644)

	// trailing separator on the root must not produce a double separator for its children.
	root := filepath.Join(tmpDir, "a") + string(os.PathSeparator)
	paths, err := Walk([]string{root})
	require.NoError(t, err)

	actual := make([]string, 0)
	for path, err := range paths {
		require.NoError(t, err)
		actual = append(actual, path)
	}

	assert.Equal(t, []string{root, root + "x.txt"}, actual)
}

func TestWalk_Empty(t *testing.T) {
	_, err := Walk(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Walk([]string{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestWalk_NotExist(t *testing.T) {
	tmpDir := t.TempDir()
	fill(t, filepath.Join(tmpDir, "a.txt"), "a", 0644)

	paths, err := Walk([]string{filepath.Join(tmpDir, "a.txt"), filepath.Join(tmpDir, "missing")})
	require.NoError(t, err)

	var (
		n       int
		lastErr error
	)
	for _, err := range paths {
		n++
		lastErr = err
	}

	assert.Equal(t, 2, n)
	assert.ErrorIs(t, lastErr, os.ErrNotExist)
}

func TestWalk_Break(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a/1.txt", "a/2.txt", "a/3.txt"} {
		fill(t, filepath.Join(tmpDir, name), name, 0644)
	}

	paths, err := Walk([]string{filepath.Join(tmpDir, "a")})
	require.NoError(t, err)

	n := 0
	for range paths {
		if n++; n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}
