// Package canvas implements the orchestration layer over the pixelboard
// store: coordinate and color validation, palette resolution, batch
// application, and event emission for every mutation.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/muralhq/mural/pkg/pixelboard"
)

// unserializableArgs is stored in place of tool arguments that cannot be
// marshaled to JSON.
const unserializableArgs = "[unserializable]"

// Service exposes the externally visible canvas operations. Tool handlers,
// HTTP handlers, and the CLI all go through a Service; it owns no state of
// its own and re-reads the full canvas from Redis on every mutation.
type Service struct {
	client *pixelboard.Client

	// now is swappable for deterministic timestamps in tests.
	now func() time.Time
}

// PixelUpdate is one entry of a multi-pixel write.
type PixelUpdate struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// New creates a Service backed by the given store client.
func New(client *pixelboard.Client) *Service {
	return &Service{
		client: client,
		now:    time.Now,
	}
}

// GetCanvas returns the current canvas state. The only side effect is the
// store's lazy initialization on first read.
func (s *Service) GetCanvas(ctx context.Context) (*pixelboard.State, error) {
	return s.client.GetState(ctx)
}

// SetPixel writes one pixel and appends a pixel_set event carrying the
// normalized color and its resolved palette index. An empty source
// defaults to system. Fails with ErrOutOfBounds, ErrInvalidColor,
// ErrPaletteFull, or ErrLengthMismatch without touching stored state.
func (s *Service) SetPixel(ctx context.Context, x, y int, color string, source pixelboard.Source) (*pixelboard.State, error) {
	if source == "" {
		source = pixelboard.SourceSystem
	}

	var colorIndex int
	state, err := s.client.UpdateState(ctx, func(state *pixelboard.State) error {
		if err := validateCoord(&state.Meta, x, y); err != nil {
			return err
		}
		if err := validateColor(color); err != nil {
			return err
		}

		grid, err := pixelboard.DecodePixels(state.PixelsBase64, state.Meta.Width*state.Meta.Height)
		if err != nil {
			return err
		}

		palette, index, err := pixelboard.EnsureColor(state.Meta.Palette, color)
		if err != nil {
			return err
		}

		grid[y*state.Meta.Width+x] = byte(index)
		state.Meta.Palette = palette
		state.PixelsBase64 = pixelboard.EncodePixels(grid)
		colorIndex = index
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := &pixelboard.Event{
		Type:        pixelboard.EventTypePixelSet,
		X:           x,
		Y:           y,
		Color:       pixelboard.NormalizeColor(color),
		ColorIndex:  colorIndex,
		Source:      source,
		TimestampMs: s.now().UnixMilli(),
	}
	if err := s.client.AppendEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("pixel written but event append failed: %w", err)
	}

	return state, nil
}

// SetPixels applies a batch of pixel writes as one store write. Every
// update's coordinates and color are validated up front, before any
// mutation, so an invalid batch is rejected whole with ErrOutOfBounds or
// ErrInvalidColor and stored state is untouched. Updates apply in input
// order against one decoded grid - a later update to the same coordinate
// wins - and one pixel_set event is appended per update, each recomputed
// against the final palette and all sharing the batch commit timestamp.
func (s *Service) SetPixels(ctx context.Context, updates []PixelUpdate, source pixelboard.Source) (*pixelboard.State, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no pixel updates given: %w", pixelboard.ErrEmptyBatch)
	}
	if source == "" {
		source = pixelboard.SourceSystem
	}

	state, err := s.client.UpdateState(ctx, func(state *pixelboard.State) error {
		// Whole-batch validation before the first grid write.
		for i, update := range updates {
			if err := validateCoord(&state.Meta, update.X, update.Y); err != nil {
				return fmt.Errorf("update %d: %w", i, err)
			}
			if err := validateColor(update.Color); err != nil {
				return fmt.Errorf("update %d: %w", i, err)
			}
		}

		grid, err := pixelboard.DecodePixels(state.PixelsBase64, state.Meta.Width*state.Meta.Height)
		if err != nil {
			return err
		}

		palette := state.Meta.Palette
		for _, update := range updates {
			var index int
			palette, index, err = pixelboard.EnsureColor(palette, update.Color)
			if err != nil {
				return err
			}
			grid[update.Y*state.Meta.Width+update.X] = byte(index)
		}

		state.Meta.Palette = palette
		state.PixelsBase64 = pixelboard.EncodePixels(grid)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Event indices are resolved against the final persisted palette, so
	// every reported index is valid even when a color was added midway
	// through the batch.
	timestamp := s.now().UnixMilli()
	for _, update := range updates {
		normalized := pixelboard.NormalizeColor(update.Color)
		event := &pixelboard.Event{
			Type:        pixelboard.EventTypePixelSet,
			X:           update.X,
			Y:           update.Y,
			Color:       normalized,
			ColorIndex:  paletteIndex(state.Meta.Palette, normalized),
			Source:      source,
			TimestampMs: timestamp,
		}
		if err := s.client.AppendEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("batch written but event append failed: %w", err)
		}
	}

	return state, nil
}

// ResetCanvas replaces the canvas with a fresh all-zero grid; zero
// dimensions and a nil palette keep the current values. No events are
// emitted: reset is an administrative operation, not an agent action.
func (s *Service) ResetCanvas(ctx context.Context, width, height int, palette []string) (*pixelboard.State, error) {
	return s.client.Reset(ctx, width, height, palette)
}

// Events returns the event log oldest-first; a positive limit restricts
// the result to the most recent limit entries.
func (s *Service) Events(ctx context.Context, limit int) ([]*pixelboard.Event, error) {
	return s.client.TailEvents(ctx, limit)
}

// LogToolUsed records a tool invocation. It is strictly best-effort:
// argument serialization failures fall back to a sentinel string and
// append failures are swallowed, so logging can never fail the operation
// it describes.
func (s *Service) LogToolUsed(ctx context.Context, tool pixelboard.ToolName, args any) {
	argsJSON := unserializableArgs
	if data, err := json.Marshal(args); err == nil {
		argsJSON = string(data)
	}

	event := &pixelboard.Event{
		Type:        pixelboard.EventTypeToolUsed,
		ToolName:    tool,
		ArgsJSON:    argsJSON,
		TimestampMs: s.now().UnixMilli(),
	}
	_ = s.client.AppendEvent(ctx, event)
}

func validateCoord(meta *pixelboard.Meta, x, y int) error {
	if x < 0 || x >= meta.Width || y < 0 || y >= meta.Height {
		return fmt.Errorf("pixel (%d,%d) outside %dx%d canvas: %w", x, y, meta.Width, meta.Height, pixelboard.ErrOutOfBounds)
	}
	return nil
}

func validateColor(color string) error {
	if strings.TrimSpace(color) == "" {
		return fmt.Errorf("color cannot be empty: %w", pixelboard.ErrInvalidColor)
	}
	return nil
}

func paletteIndex(palette []string, normalized string) int {
	for i, color := range palette {
		if color == normalized {
			return i
		}
	}
	return 0
}
