package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression formats supported for feed snapshots
const (
	CompressionNone = ""
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
	CompressionXz   = "xz"
)

// ValidCompression reports whether format is a known compression format
func ValidCompression(format string) bool {
	switch format {
	case CompressionNone, CompressionGzip, CompressionZstd, CompressionXz:
		return true
	}
	return false
}

// CompressionExt returns the file extension for a compression format
func CompressionExt(format string) string {
	switch format {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionXz:
		return ".xz"
	default:
		return ""
	}
}

// Compress compresses data with the given format. CompressionNone returns
// data unchanged.
func Compress(data []byte, format string) ([]byte, error) {
	switch format {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		return GzipCompress(data)
	case CompressionZstd:
		return ZstdCompress(data)
	case CompressionXz:
		return XzCompress(data)
	default:
		return nil, fmt.Errorf("unknown compression format %q", format)
	}
}

// Decompress reverses Compress
func Decompress(data []byte, format string) ([]byte, error) {
	switch format {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		return GzipDecompress(data)
	case CompressionZstd:
		return ZstdDecompress(data)
	case CompressionXz:
		return XzDecompress(data)
	default:
		return nil, fmt.Errorf("unknown compression format %q", format)
	}
}

// GzipCompress compresses data using gzip
func GzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GzipDecompress decompresses gzip data
func GzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// ZstdCompress compresses data using zstd
func ZstdCompress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(data, nil), nil
}

// ZstdDecompress decompresses zstd data
func ZstdDecompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.DecodeAll(data, nil)
}

// XzCompress compresses data using xz
func XzCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// XzDecompress decompresses xz data
func XzDecompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}
