package tools

import (
	"strings"

	"github.com/muralhq/mural/pkg/pixelboard"
)

// indexAlphabet maps the first 64 palette indices to single characters for
// the text rendering. Higher indices fall back to '?'.
const indexAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

// renderRows produces a plain-text view of the canvas, one string per row,
// each pixel rendered as the character for its palette index.
func renderRows(state *pixelboard.State) ([]string, error) {
	grid, err := pixelboard.DecodePixels(state.PixelsBase64, state.Meta.Width*state.Meta.Height)
	if err != nil {
		return nil, err
	}

	rows := make([]string, state.Meta.Height)
	var row strings.Builder
	for y := 0; y < state.Meta.Height; y++ {
		row.Reset()
		for x := 0; x < state.Meta.Width; x++ {
			index := grid[y*state.Meta.Width+x]
			if int(index) < len(indexAlphabet) {
				row.WriteByte(indexAlphabet[index])
			} else {
				row.WriteByte('?')
			}
		}
		rows[y] = row.String()
	}

	return rows, nil
}
