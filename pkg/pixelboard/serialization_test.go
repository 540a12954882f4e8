package pixelboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventEntry(t *testing.T) {
	pixelJSON := `{"type":"pixel_set","x":3,"y":4,"color":"#ffffff","colorIndex":0,"source":"system","timestampMs":1700000000000}`

	t.Run("decodes a plain JSON object", func(t *testing.T) {
		event, ok := DecodeEventEntry(pixelJSON)
		require.True(t, ok)
		assert.Equal(t, EventTypePixelSet, event.Type)
		assert.Equal(t, 3, event.X)
		assert.Equal(t, 4, event.Y)
		assert.Equal(t, "#ffffff", event.Color)
	})

	t.Run("unwraps one string-encoding layer", func(t *testing.T) {
		wrapped, err := json.Marshal(pixelJSON)
		require.NoError(t, err)

		event, ok := DecodeEventEntry(string(wrapped))
		require.True(t, ok)
		assert.Equal(t, EventTypePixelSet, event.Type)
	})

	t.Run("unwraps two string-encoding layers", func(t *testing.T) {
		once, err := json.Marshal(pixelJSON)
		require.NoError(t, err)
		twice, err := json.Marshal(string(once))
		require.NoError(t, err)

		event, ok := DecodeEventEntry(string(twice))
		require.True(t, ok)
		assert.Equal(t, EventTypePixelSet, event.Type)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, ok := DecodeEventEntry(`{"type":"pixel_set"`)
		assert.False(t, ok)
	})

	t.Run("rejects unrecognized event shapes", func(t *testing.T) {
		_, ok := DecodeEventEntry(`{"type":"something_else","x":1}`)
		assert.False(t, ok)

		_, ok = DecodeEventEntry(`{"foo":"bar"}`)
		assert.False(t, ok)
	})

	t.Run("rejects bare strings that are not JSON objects", func(t *testing.T) {
		_, ok := DecodeEventEntry(`"just a string"`)
		assert.False(t, ok)
	})

	t.Run("decodes tool_used entries", func(t *testing.T) {
		event, ok := DecodeEventEntry(`{"type":"tool_used","toolName":"set_pixel","argsJson":"{\"x\":1}","timestampMs":42}`)
		require.True(t, ok)
		assert.Equal(t, EventTypeToolUsed, event.Type)
		assert.Equal(t, ToolSetPixel, event.ToolName)
		assert.Equal(t, `{"x":1}`, event.ArgsJSON)
	})
}
