package output

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how the destination file is encoded.
type Compression string

const (
	// CompressionNone writes plain text.
	CompressionNone Compression = "none"
	// CompressionGzip writes a gzip stream.
	CompressionGzip Compression = "gzip"
	// CompressionZstd writes a zstd stream.
	CompressionZstd Compression = "zstd"
)

// ParseCompression parses a compression name. The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip, CompressionZstd:
		return Compression(s), nil
	}
	return "", fmt.Errorf("unknown compression %q (must be none, gzip, or zstd)", s)
}

// Extension returns the suffix appended to the destination file name.
func (c Compression) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	}
	return ""
}

// NewCompressedWriter wraps w according to c. Closing the returned writer
// finishes the compressed stream but does not close w.
func NewCompressedWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case "", CompressionNone:
		return nopCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("unknown compression %q", string(c))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
