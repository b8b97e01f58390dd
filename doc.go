// Package sisl reads and writes SIESTA density-matrix interchange
// files and computes the Bloch-phase factors applied to them.
//
// The root package is the sparse-matrix codec: it probes, reads and
// writes the Fortran-unformatted DM and TSDE-style EDM files that
// SIESTA and TBtrans exchange. The bloch subpackage is the phase
// engine used when folding the supercell-indexed matrices to a
// k-point.
//
// # Reading
//
// Files are probed first so the caller knows the buffer sizes, then
// read with the probed (or independently known) sizes as a contract:
//
//	sizes, _ := sisl.ProbeSizes("run.DM")
//	dm, err := sisl.ReadDensityMatrix("run.DM", sizes)
//
// A file whose header or row layout disagrees with the supplied sizes
// fails with a *MismatchError naming the offending field; no partial
// result is ever returned.
//
// Gzip, zstd and lz4 compressed files are detected by their magic
// bytes and decompressed transparently.
//
// # Writing
//
// Writers emit the same record structure byte for byte, via an atomic
// temp-file rename:
//
//	err := sisl.WriteDensityMatrix("out.DM", dm, sisl.WithCompression(sisl.Gzip))
package sisl
