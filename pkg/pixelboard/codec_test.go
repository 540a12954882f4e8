package pixelboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelCodecRoundTrip(t *testing.T) {
	t.Run("round-trips arbitrary grids", func(t *testing.T) {
		grids := [][]byte{
			make([]byte, 64*64),
			{0, 1, 2, 255, 16, 3},
			{42},
			make([]byte, 10*10),
		}

		for _, grid := range grids {
			decoded, err := DecodePixels(EncodePixels(grid), len(grid))
			require.NoError(t, err)
			assert.Equal(t, grid, decoded)
		}
	})

	t.Run("round-trips the empty grid", func(t *testing.T) {
		decoded, err := DecodePixels(EncodePixels([]byte{}), 0)
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})
}

func TestDecodePixels(t *testing.T) {
	t.Run("fails with ErrLengthMismatch on wrong length", func(t *testing.T) {
		encoded := EncodePixels(make([]byte, 100))

		_, err := DecodePixels(encoded, 64)
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("fails on invalid base64", func(t *testing.T) {
		_, err := DecodePixels("not valid base64!!!", 4)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrLengthMismatch)
	})

	t.Run("does not validate index ranges", func(t *testing.T) {
		// Indices beyond any palette are the caller's problem.
		decoded, err := DecodePixels(EncodePixels([]byte{200, 250}), 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{200, 250}, decoded)
	})
}
