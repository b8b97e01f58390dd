package sisl

import (
	"errors"
	"fmt"
)

var (
	// ErrHeader is returned when the first record is neither the
	// modern 5-field nor the legacy 2-field header.
	ErrHeader = errors.New("malformed header record")

	// ErrRowLength is returned when a row-length record carries a
	// negative entry.
	ErrRowLength = errors.New("negative row length")

	// ErrCompression is returned when WithCompression is given an
	// unknown scheme.
	ErrCompression = errors.New("unknown compression scheme")
)

// MismatchError reports a disagreement between the file contents and
// the caller-supplied sizes. The whole read is aborted; buffers handed
// back on the error path must be discarded.
type MismatchError struct {
	Field string // "no_u", "nspin", "nsc[0]".."nsc[2]", "nnz"
	Want  int    // caller-supplied value
	Got   int    // value found in the file
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("size mismatch on %s: file has %d, caller expects %d", e.Field, e.Got, e.Want)
}
