package util

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStemAndExt(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantStem string
		wantExt  string
	}{
		{
			name:     "bak.tar",
			path:     "C:\\Users\\bak.tar",
			wantStem: "bak",
			wantExt:  ".tar",
		},
		{
			name:     "backup.tar.gz",
			path:     "/path/to/backup.tar.gz",
			wantStem: "backup",
			wantExt:  ".tar.gz",
		},
		{
			name:     "backup.tar.zst",
			path:     "relative/backup.tar.zst",
			wantStem: "backup",
			wantExt:  ".tar.zst",
		},
		{
			name:     "notes.markdown",
			path:     "/path/to/notes.markdown",
			wantStem: "notes.markdown",
			wantExt:  "",
		},
		{
			// no separator means the stem comes from filepath.Base.
			name:     "ab",
			path:     "ab",
			wantStem: "ab",
			wantExt:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStem, gotExt := StemAndExt(tt.path)
			assert.Equalf(t, tt.wantStem, gotStem, "StemAndExt() gotStem = %v, want %v", gotStem, tt.wantStem)
			assert.Equalf(t, tt.wantExt, gotExt, "StemAndExt() gotExt = %v, want %v", gotExt, tt.wantExt)
		})
	}
}

func TestOpenExclFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "backup.tar.gz")

	f1, err := OpenExclFile(name, 0644)
	require.NoError(t, err)
	defer f1.Close()
	assert.Equal(t, name, f1.Name())

	f2, err := OpenExclFile(name, 0644)
	require.NoError(t, err)
	defer f2.Close()
	assert.Equal(t, filepath.Join(dir, "backup-1.tar.gz"), f2.Name())

	f3, err := OpenExclFile(name, 0644)
	require.NoError(t, err)
	defer f3.Close()
	assert.Equal(t, filepath.Join(dir, "backup-2.tar.gz"), f3.Name())
}

func TestChainCloser(t *testing.T) {
	var order []string
	first, second := errors.New("first"), errors.New("second")

	closer := ChainCloser(
		func() error {
			order = append(order, "tar")
			return nil
		},
		func() error {
			order = append(order, "gzip")
			return first
		},
		func() error {
			order = append(order, "file")
			return second
		})

	assert.ErrorIs(t, closer(), first)
	assert.Equal(t, []string{"tar", "gzip", "file"}, order)
}

func TestCopyBufferWithContext(t *testing.T) {
	src := strings.Repeat("hello, world\n", 1000)

	var dst bytes.Buffer
	n, err := CopyBufferWithContext(context.Background(), &dst, strings.NewReader(src), make([]byte, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), n)
	assert.Equal(t, src, dst.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dst.Reset()
	_, err = CopyBufferWithContext(ctx, &dst, strings.NewReader(src), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncateRightWithSuffix(t *testing.T) {
	assert.Equal(t, "hello", TruncateRightWithSuffix("hello", 5, "..."))
	assert.Equal(t, "hel...", TruncateRightWithSuffix("hello", 3, "..."))
	assert.Equal(t, "...", TruncateRightWithSuffix("hello", 0, "..."))
	assert.Equal(t, "héllo", TruncateRightWithSuffix("héllo", 10, "..."))
}

func TestWriteNoopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := &WriteNoopCloser{Writer: &buf}
	_, err := w.Write([]byte("data"))
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.Equal(t, "data", buf.String())
}
