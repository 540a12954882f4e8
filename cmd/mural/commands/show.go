package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/printer"
)

var (
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the canvas in the terminal",
	Long: `Display the canvas as colored blocks in the terminal.

A fresh instance is lazily initialized to a blank 64x64 canvas with the
default 16-color palette on first read.

Use --json for the raw state (metadata plus base64 pixel grid).`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the raw state as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, client, err := newService()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := svc.GetCanvas(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read canvas: %w", err)
	}

	if showJSON {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode canvas state: %w", err)
		}
		printer.Println(string(data))
		return nil
	}

	rows, err := printer.CanvasRows(state)
	if err != nil {
		return err
	}

	for _, row := range rows {
		printer.Println(row)
	}
	printer.Info("%dx%d canvas, %d palette colors (instance '%s')\n",
		state.Meta.Width, state.Meta.Height, len(state.Meta.Palette), resolveInstance())

	return nil
}
