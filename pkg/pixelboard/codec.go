package pixelboard

import (
	"encoding/base64"
	"fmt"
)

// Pixel grid transport encoding
//
// The grid is a flat row-major sequence of 8-bit palette indices
// (index = y*width + x). It travels and persists as standard base64 so the
// stored state is a single JSON-safe string.

// EncodePixels serializes a flat pixel grid into its transport encoding.
func EncodePixels(pixels []byte) string {
	return base64.StdEncoding.EncodeToString(pixels)
}

// DecodePixels reverses EncodePixels. It fails with ErrLengthMismatch when
// the decoded grid does not contain exactly expectedLen pixels, which
// guards against corrupted or stale stored state after a metadata change.
// Index range validation is the caller's responsibility.
func DecodePixels(encoded string, expectedLen int) ([]byte, error) {
	pixels, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pixel data: %w", err)
	}

	if len(pixels) != expectedLen {
		return nil, fmt.Errorf("decoded %d pixels, expected %d: %w", len(pixels), expectedLen, ErrLengthMismatch)
	}

	return pixels, nil
}
