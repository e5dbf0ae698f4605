// Package xtar creates, extracts, and lists tar archives of file trees, optionally compressed with gzip (or zstd, xz,
// and lz4).
//
// The functions Tar, TarGz, Untar, UntarGz, TarLs, and TarGzLs are the equivalents of `tar cf`, `tar zcf`, `tar xf`,
// `tar zxf`, `tar tf`, and `tar ztf` respectively. CdTar and CdTarGz are the equivalents of `tar -C dir cf`: the source
// paths are relative to dir, and so are the entry names in the archive:
//
//	// walks "build/out/bin" and "build/out/lib" but the archive has entries "bin/..." and "lib/...".
//	err := xtar.CdTarGz(ctx, "build/out", "release.tar.gz", "bin", "lib")
//
// None of the functions change the process's working directory so they are safe to be called concurrently from
// different goroutines with different base directories.
package xtar
