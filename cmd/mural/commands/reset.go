package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/config"
	"github.com/muralhq/mural/internal/printer"
)

var (
	resetWidth   int
	resetHeight  int
	resetPalette []string
	resetConfig  string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the canvas to a blank grid",
	Long: `Reset the canvas to a blank grid, every pixel at palette index 0.

Dimensions and palette default to the current canvas when omitted, so a
plain 'mural reset' wipes the grid in place. Resetting does not append
events; the log keeps its history.

Examples:
  # Wipe the canvas at its current size
  mural reset

  # Resize to 128x128 keeping the palette
  mural reset --width 128 --height 128

  # Apply the geometry from a mural.yml
  mural reset --config mural.yml`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().IntVar(&resetWidth, "width", 0, "New canvas width (0 keeps current)")
	resetCmd.Flags().IntVar(&resetHeight, "height", 0, "New canvas height (0 keeps current)")
	resetCmd.Flags().StringSliceVar(&resetPalette, "palette", nil, "Replacement palette colors (omit to keep current)")
	resetCmd.Flags().StringVar(&resetConfig, "config", "", "Take width, height and palette from a mural.yml")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	width, height, palette := resetWidth, resetHeight, resetPalette

	if resetConfig != "" {
		cfg, err := config.Load(resetConfig)
		if err != nil {
			return err
		}
		if cfg.Canvas == nil {
			return printer.Error(
				"config has no canvas section",
				fmt.Sprintf("%s does not define canvas geometry to reset to.", resetConfig),
				[]string{"Add a canvas section:\n  canvas:\n    width: 64\n    height: 64"},
			)
		}
		width, height, palette = cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Palette
	}

	svc, client, err := newService()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := svc.ResetCanvas(context.Background(), width, height, palette)
	if err != nil {
		return fmt.Errorf("failed to reset canvas: %w", err)
	}

	printer.Success("canvas reset to %dx%d with %d palette colors\n",
		state.Meta.Width, state.Meta.Height, len(state.Meta.Palette))
	return nil
}
