package pixelboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPatterns(t *testing.T) {
	t.Run("CanvasKey", func(t *testing.T) {
		assert.Equal(t, "mural:prod:canvas", CanvasKey("prod"))
	})

	t.Run("EventsKey", func(t *testing.T) {
		assert.Equal(t, "mural:prod:events", EventsKey("prod"))
	})

	t.Run("PixelEventsChannel", func(t *testing.T) {
		assert.Equal(t, "mural:prod:pixel_events", PixelEventsChannel("prod"))
	})

	t.Run("instances do not collide", func(t *testing.T) {
		assert.NotEqual(t, CanvasKey("a"), CanvasKey("b"))
		assert.NotEqual(t, EventsKey("a"), EventsKey("b"))
	})
}
