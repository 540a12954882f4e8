package pixelboard

import "errors"

// Sentinel errors for canvas operations. Callers match them with errors.Is;
// the concrete error values carry the offending coordinates or sizes in
// their wrapped messages.
var (
	// ErrOutOfBounds indicates a pixel coordinate outside the canvas grid.
	ErrOutOfBounds = errors.New("pixel coordinate out of bounds")

	// ErrInvalidColor indicates an empty or otherwise unusable color value.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidDimensions indicates non-positive canvas dimensions.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")

	// ErrPaletteFull indicates the 256-color palette ceiling was reached
	// while trying to add a new color.
	ErrPaletteFull = errors.New("palette is full")

	// ErrLengthMismatch indicates the decoded pixel grid does not match the
	// size implied by the canvas metadata. This signals stored-state
	// corruption or a metadata/grid desync.
	ErrLengthMismatch = errors.New("pixel data length mismatch")

	// ErrEmptyBatch indicates a multi-pixel write with no updates.
	ErrEmptyBatch = errors.New("empty pixel batch")
)
