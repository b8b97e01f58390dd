// Package record implements Fortran-unformatted record framing: every
// record is a payload bracketed by two identical uint32 byte-length
// markers. SIESTA interchange files are sequences of such records.
package record

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// FramingError indicates a structurally broken record: a short read
// inside a record, or head/tail markers that disagree.
type FramingError struct {
	Reason string
	Head   uint32
	Tail   uint32
}

func (e *FramingError) Error() string {
	if e.Head != e.Tail {
		return fmt.Sprintf("record framing: %s (head=%d tail=%d)", e.Reason, e.Head, e.Tail)
	}
	return fmt.Sprintf("record framing: %s", e.Reason)
}

// SizeError indicates a record whose payload length does not match the
// element count the caller asked for.
type SizeError struct {
	Want int // expected payload bytes
	Got  int // payload bytes announced by the head marker
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("record payload is %d bytes, expected %d", e.Got, e.Want)
}

// Reader decodes records from a sequential stream. It never seeks, so
// it works on compressed streams as well as plain files.
type Reader struct {
	r     io.Reader
	order binary.ByteOrder
}

// NewReader returns a Reader over r using little-endian markers.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, order: binary.LittleEndian}
}

// maxNextSize bounds the allocation driven by an untrusted head
// marker in Next. Whole-record reads are only used for headers, which
// are a few bytes; a marker anywhere near this limit is corruption.
const maxNextSize = 1 << 20

// Next reads one whole record and returns its payload. The payload is
// freshly allocated and safe to retain. Records larger than
// maxNextSize are rejected; use the typed readers for bulk payloads.
func (r *Reader) Next() ([]byte, error) {
	n, err := r.head()
	if err != nil {
		return nil, err
	}
	if n > maxNextSize {
		return nil, &FramingError{Reason: fmt.Sprintf("record of %d bytes exceeds limit", n)}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, &FramingError{Reason: "short payload read: " + err.Error()}
	}
	if err := r.tail(n); err != nil {
		return nil, err
	}
	return buf, nil
}

// Int32s reads one record whose payload must hold exactly len(dst)
// int32 values, decoding into dst.
func (r *Reader) Int32s(dst []int32) error {
	n, err := r.head()
	if err != nil {
		return err
	}
	if int(n) != len(dst)*4 {
		return &SizeError{Want: len(dst) * 4, Got: int(n)}
	}
	if len(dst) > 0 {
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*4) //nolint:gosec // zero-copy decode of native little-endian payload
		if _, err := io.ReadFull(r.r, byteSlice); err != nil {
			return &FramingError{Reason: "short payload read: " + err.Error()}
		}
	}
	return r.tail(n)
}

// Float64s reads one record whose payload must hold exactly len(dst)
// float64 values, decoding into dst.
func (r *Reader) Float64s(dst []float64) error {
	n, err := r.head()
	if err != nil {
		return err
	}
	if int(n) != len(dst)*8 {
		return &SizeError{Want: len(dst) * 8, Got: int(n)}
	}
	if len(dst) > 0 {
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*8) //nolint:gosec // zero-copy decode of native little-endian payload
		if _, err := io.ReadFull(r.r, byteSlice); err != nil {
			return &FramingError{Reason: "short payload read: " + err.Error()}
		}
	}
	return r.tail(n)
}

// Skip consumes one record without retaining its payload.
func (r *Reader) Skip() error {
	n, err := r.head()
	if err != nil {
		return err
	}
	if _, err := io.CopyN(io.Discard, r.r, int64(n)); err != nil {
		return &FramingError{Reason: "short payload read: " + err.Error()}
	}
	return r.tail(n)
}

func (r *Reader) head() (uint32, error) {
	var n uint32
	if err := binary.Read(r.r, r.order, &n); err != nil {
		// Propagate io.EOF untouched so callers can detect a clean
		// end of stream between records.
		return 0, err
	}
	return n, nil
}

func (r *Reader) tail(head uint32) error {
	var n uint32
	if err := binary.Read(r.r, r.order, &n); err != nil {
		return &FramingError{Reason: "missing tail marker: " + err.Error()}
	}
	if n != head {
		return &FramingError{Reason: "marker mismatch", Head: head, Tail: n}
	}
	return nil
}
