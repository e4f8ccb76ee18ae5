// Package framing implements the compressed-plaintext framing used ahead of
// the cipher: a fixed 3-byte marker followed by a zlib deflate stream. The
// decrypt side detects the marker to decide whether inflation is needed.
package framing

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Marker is the tag prefixed to compressed plaintext before ciphering.
const Marker = ":$;"

// Wrap compresses data and prefixes the frame marker.
func Wrap(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Marker)
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress frame: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize compressed frame: %w", err)
	}
	return buf.Bytes(), nil
}

// IsWrapped reports whether data begins with the frame marker.
func IsWrapped(data []byte) bool {
	return len(data) >= len(Marker) && string(data[:len(Marker)]) == Marker
}

// Unwrap strips the frame marker and inflates the remainder. It fails when
// the marker is absent or the compressed stream is corrupt.
func Unwrap(data []byte) ([]byte, error) {
	if !IsWrapped(data) {
		return nil, fmt.Errorf("data does not begin with frame marker")
	}
	r, err := zlib.NewReader(bytes.NewReader(data[len(Marker):]))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed frame: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress frame: %w", err)
	}
	return out, nil
}
