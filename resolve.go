package xtar

import (
	"os"
	"strings"
)

// Resolve returns the name in the archive for the given walked path.
//
// If base is empty, path is returned unchanged. Otherwise, the exact prefix `base + separator` is removed from path.
// There is no cleaning of `..` or duplicate separators, and no symlink resolution; walked paths are expected to have
// been produced by joining base to each source path with joinBase.
func Resolve(base, path string) string {
	if base == "" {
		return path
	}

	return strings.TrimPrefix(path, base+string(os.PathSeparator))
}

// joinBase joins base and src with a single separator without cleaning either.
//
// filepath.Join would Clean the result and break the exact prefix match in Resolve.
func joinBase(base, src string) string {
	if base == "" {
		return src
	}

	return base + string(os.PathSeparator) + src
}
