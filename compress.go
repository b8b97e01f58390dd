package sisl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Stream magic bytes. Record markers of real files never collide with
// these: the first record is 8 or 20 bytes, so a plain file starts
// 0x08 or 0x14.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// decompress sniffs the leading bytes of r and returns a transparently
// decompressing reader plus a release func for the decompressor state.
func decompress(r io.Reader) (io.Reader, func(), error) {
	nop := func() {}

	br := bufio.NewReaderSize(r, 64*1024)
	magic, err := br.Peek(4)
	if err != nil && len(magic) < 2 {
		// Too short for any magic; let the record layer report it.
		return br, nop, nil
	}

	switch {
	case bytes.HasPrefix(magic, magicGzip):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nop, fmt.Errorf("gzip stream: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case bytes.HasPrefix(magic, magicZstd):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nop, fmt.Errorf("zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	case bytes.HasPrefix(magic, magicLZ4):
		return lz4.NewReader(br), nop, nil
	default:
		return br, nop, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// compress wraps w in the requested compression scheme. The returned
// writer must be closed to flush the stream trailer; closing it does
// not close w.
func compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd stream: %w", err)
		}
		return zw, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrCompression, c)
	}
}
