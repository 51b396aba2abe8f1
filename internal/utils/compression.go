package utils

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// ReadEncoded reads body according to an HTTP Content-Encoding value.
// Only identity and gzip are supported.
func ReadEncoded(contentEncoding string, body io.Reader) ([]byte, error) {
	switch contentEncoding {
	case "", "identity":
		return io.ReadAll(body)
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
}
