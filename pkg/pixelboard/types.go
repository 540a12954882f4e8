package pixelboard

import "fmt"

// Default canvas geometry used when the canvas key is first read.
const (
	DefaultWidth  = 64
	DefaultHeight = 64
)

// DefaultPalette is the 16-color starting palette. Index 0 is white, which
// also serves as the background color of a freshly initialized canvas.
// Entries are already normalized (lowercase, six hex digits).
var DefaultPalette = []string{
	"#ffffff", "#e4e4e4", "#888888", "#222222",
	"#ffa7d1", "#e50000", "#e59500", "#a06a42",
	"#e5d900", "#94e044", "#02be01", "#00d3dd",
	"#0083c7", "#0000ea", "#cf6ee4", "#820080",
}

// Meta describes the canvas geometry and its color palette.
// The palette is append-only: colors are never removed or reindexed, so a
// pixel's stored palette index stays valid for the lifetime of the canvas.
type Meta struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Palette []string `json:"palette"`
}

// State is the full persisted canvas: metadata plus the base64-encoded
// row-major grid of 8-bit palette indices. It is stored as a single JSON
// value at a fixed per-instance key and always replaced wholesale.
type State struct {
	Meta         Meta   `json:"meta"`
	PixelsBase64 string `json:"pixelsBase64"`
}

// NewDefaultState builds the canvas every instance starts from: 64x64,
// the 16-color default palette, all pixels at index 0.
func NewDefaultState() *State {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return &State{
		Meta: Meta{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Palette: palette,
		},
		PixelsBase64: EncodePixels(make([]byte, DefaultWidth*DefaultHeight)),
	}
}

// Validate checks the Meta invariants: positive dimensions and a palette
// small enough that every index fits in 8 bits.
func (m *Meta) Validate() error {
	if m.Width < 1 || m.Height < 1 {
		return fmt.Errorf("canvas must be at least 1x1, got %dx%d: %w", m.Width, m.Height, ErrInvalidDimensions)
	}
	if len(m.Palette) == 0 {
		return fmt.Errorf("palette cannot be empty")
	}
	if len(m.Palette) > MaxPaletteSize {
		return fmt.Errorf("palette has %d entries, max %d: %w", len(m.Palette), MaxPaletteSize, ErrPaletteFull)
	}
	return nil
}

// Validate checks the State as a unit, including that the encoded grid
// decodes to exactly width*height pixels.
func (s *State) Validate() error {
	if err := s.Meta.Validate(); err != nil {
		return err
	}
	if _, err := DecodePixels(s.PixelsBase64, s.Meta.Width*s.Meta.Height); err != nil {
		return err
	}
	return nil
}

// EventType discriminates the two event variants in the log.
type EventType string

const (
	// EventTypePixelSet records a single successful pixel mutation.
	EventTypePixelSet EventType = "pixel_set"

	// EventTypeToolUsed records a tool invocation, appended before the
	// tool's effect is applied.
	EventTypeToolUsed EventType = "tool_used"
)

// Source tags the origin of a pixel mutation.
type Source string

const (
	SourceToolProtocol Source = "tool-protocol"
	SourceHTTPAPI      Source = "http-api"
	SourceScript       Source = "script"
	SourceSystem       Source = "system"
)

// ToolName identifies one of the canvas tools exposed to agents.
type ToolName string

const (
	ToolGetCanvas ToolName = "get_canvas"
	ToolSetPixel  ToolName = "set_pixel"
	ToolSetPixels ToolName = "set_pixels"
	ToolGetEvents ToolName = "get_events"
)

// Event is one entry in the append-only canvas log. The Type field selects
// which of the remaining fields are meaningful: pixel_set events carry
// X/Y/Color/ColorIndex/Source, tool_used events carry ToolName/ArgsJSON.
// Events are immutable once appended and ordered oldest-first.
type Event struct {
	ID          string    `json:"id,omitempty"` // UUID assigned at append time
	Type        EventType `json:"type"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Color       string    `json:"color,omitempty"` // normalized color string
	ColorIndex  int       `json:"colorIndex"`
	Source      Source    `json:"source,omitempty"`
	ToolName    ToolName  `json:"toolName,omitempty"`
	ArgsJSON    string    `json:"argsJson,omitempty"`
	TimestampMs int64     `json:"timestampMs"`
}

// Validate checks if the EventType is a recognized variant.
func (et EventType) Validate() error {
	switch et {
	case EventTypePixelSet, EventTypeToolUsed:
		return nil
	default:
		return fmt.Errorf("unknown event type: %q", et)
	}
}

// Validate checks if the Source is a valid enum value.
func (s Source) Validate() error {
	switch s {
	case SourceToolProtocol, SourceHTTPAPI, SourceScript, SourceSystem:
		return nil
	default:
		return fmt.Errorf("unknown event source: %q", s)
	}
}

// Validate checks if the ToolName is a valid enum value.
func (tn ToolName) Validate() error {
	switch tn {
	case ToolGetCanvas, ToolSetPixel, ToolSetPixels, ToolGetEvents:
		return nil
	default:
		return fmt.Errorf("unknown tool name: %q", tn)
	}
}

// Validate checks the Event has valid field values for its variant.
func (e *Event) Validate() error {
	if err := e.Type.Validate(); err != nil {
		return err
	}

	switch e.Type {
	case EventTypePixelSet:
		if e.Color == "" {
			return fmt.Errorf("pixel_set event must carry a color")
		}
		if err := e.Source.Validate(); err != nil {
			return err
		}
	case EventTypeToolUsed:
		if err := e.ToolName.Validate(); err != nil {
			return err
		}
	}

	return nil
}
