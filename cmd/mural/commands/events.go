package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/printer"
	"github.com/muralhq/mural/pkg/pixelboard"
)

var (
	eventsLimit int
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List canvas events",
	Long: `List canvas events oldest-first.

The log records every pixel write and every tool invocation. Use --limit
to show only the most recent entries.

Examples:
  mural events
  mural events --limit 20
  mural events --json`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 0, "Show only the most recent N events (0 for all)")
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	svc, client, err := newService()
	if err != nil {
		return err
	}
	defer client.Close()

	events, err := svc.Events(context.Background(), eventsLimit)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	if eventsJSON {
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
		printer.Println(string(data))
		return nil
	}

	if len(events) == 0 {
		printer.Info("no events recorded\n")
		return nil
	}

	for _, event := range events {
		printer.Println(formatEvent(event))
	}
	printer.Info("%d events\n", len(events))

	return nil
}

// formatEvent renders one event as a single human-readable line.
func formatEvent(event *pixelboard.Event) string {
	ts := time.UnixMilli(event.TimestampMs).UTC().Format(time.RFC3339)

	switch event.Type {
	case pixelboard.EventTypePixelSet:
		source := string(event.Source)
		if source == "" {
			source = "unknown"
		}
		return fmt.Sprintf("%s  %s(%d,%d) %s [%d] by %s",
			ts, printer.PixelBlock(event.Color), event.X, event.Y, event.Color, event.ColorIndex, source)
	case pixelboard.EventTypeToolUsed:
		return fmt.Sprintf("%s  tool %s %s", ts, event.ToolName, event.ArgsJSON)
	default:
		return fmt.Sprintf("%s  %s", ts, event.Type)
	}
}
