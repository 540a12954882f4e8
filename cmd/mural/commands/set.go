package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/printer"
	"github.com/muralhq/mural/pkg/pixelboard"
)

var setCmd = &cobra.Command{
	Use:   "set X Y COLOR",
	Short: "Paint a single pixel",
	Long: `Paint a single pixel at (X, Y) with the given color.

Coordinates are zero-based with (0,0) in the top-left corner. Colors are
CSS-style strings; hex shorthand like #f80 expands to #ff8800, and a new
color is appended to the palette on first use.

Examples:
  mural set 10 12 "#ff8800"
  mural set 0 0 "#f80" --instance studio`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return printer.Error(
			"invalid X coordinate",
			fmt.Sprintf("%q is not an integer", args[0]),
			[]string{"Usage:\n  mural set X Y COLOR"},
		)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return printer.Error(
			"invalid Y coordinate",
			fmt.Sprintf("%q is not an integer", args[1]),
			[]string{"Usage:\n  mural set X Y COLOR"},
		)
	}
	color := args[2]

	svc, client, err := newService()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := svc.SetPixel(context.Background(), x, y, color, pixelboard.SourceScript)
	if err != nil {
		if errors.Is(err, pixelboard.ErrOutOfBounds) {
			return printer.ErrorWithContext(
				"pixel out of bounds",
				err.Error(),
				map[string]string{"Coordinate": fmt.Sprintf("(%d, %d)", x, y)},
				[]string{"Check the canvas size:\n  mural show"},
			)
		}
		return err
	}

	printer.Success("painted (%d, %d) %s on %dx%d canvas\n", x, y, pixelboard.NormalizeColor(color), state.Meta.Width, state.Meta.Height)
	return nil
}
