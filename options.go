package sisl

import (
	"io"
	"log/slog"
)

// Compression selects the stream compression applied by the writers.
// Readers never need it: they sniff the magic bytes.
type Compression int

const (
	// None writes plain records.
	None Compression = iota
	// Gzip wraps the file in a gzip stream.
	Gzip
	// Zstd wraps the file in a zstandard stream.
	Zstd
	// LZ4 wraps the file in an lz4 frame.
	LZ4
)

type options struct {
	logger      *slog.Logger
	compression Compression
}

// Option configures probe/read/write behavior.
type Option func(*options)

// WithLogger attaches a structured logger; probes and reads log at
// Debug level. Passing nil restores the default (discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

// WithCompression selects the compression scheme used by the writers.
// It has no effect on reads.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: discardLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
