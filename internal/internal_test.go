package internal

import (
	"io"
	"testing"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, `[1/3] "backup.tar.gz" - `, Prefix(0, 3, "path/to/backup.tar.gz"))
	assert.Equal(t, `[2/2] "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa..." - `, Prefix(1, 2, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.tar"))
}

func TestDefaultBytes(t *testing.T) {
	// go test never runs with a terminal on stderr, which would hide the bar and stop it from counting.
	bar := DefaultBytes(100, "test", progressbar.OptionSetWriter(io.Discard), progressbar.OptionSetVisibility(true))

	n, err := bar.Write(make([]byte, 40))
	assert.NoError(t, err)
	assert.Equal(t, 40, n)
	assert.Equal(t, int64(40), bar.State().CurrentNum)
	assert.NoError(t, bar.Close())
}

func TestDefaultBytes_Hidden(t *testing.T) {
	bar := DefaultBytes(100, "test", progressbar.OptionSetWriter(io.Discard), progressbar.OptionSetVisibility(false))

	n, err := bar.Write(make([]byte, 40))
	assert.NoError(t, err)
	assert.Equal(t, 40, n)
}
