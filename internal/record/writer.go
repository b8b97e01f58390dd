package record

import (
	"encoding/binary"
	"io"
	"unsafe"
)

// Writer emits Fortran-unformatted records, mirroring Reader.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
}

// NewWriter returns a Writer over w using little-endian markers.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, order: binary.LittleEndian}
}

// Int32s writes one record holding the given int32 values.
func (w *Writer) Int32s(src []int32) error {
	n := uint32(len(src) * 4) //nolint:gosec
	if err := binary.Write(w.w, w.order, n); err != nil {
		return err
	}
	if len(src) > 0 {
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*4) //nolint:gosec // zero-copy encode
		if _, err := w.w.Write(byteSlice); err != nil {
			return err
		}
	}
	return binary.Write(w.w, w.order, n)
}

// Float64s writes one record holding the given float64 values.
func (w *Writer) Float64s(src []float64) error {
	n := uint32(len(src) * 8) //nolint:gosec
	if err := binary.Write(w.w, w.order, n); err != nil {
		return err
	}
	if len(src) > 0 {
		byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&src[0])), len(src)*8) //nolint:gosec // zero-copy encode
		if _, err := w.w.Write(byteSlice); err != nil {
			return err
		}
	}
	return binary.Write(w.w, w.order, n)
}
