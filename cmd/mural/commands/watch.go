package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/printer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live pixel events",
	Long: `Stream pixel events as they happen, one line per painted pixel.

Delivery is at-most-once: a slow terminal can miss events, but the
durable log stays complete ('mural events' replays everything).

Press Ctrl+C to stop.

Examples:
  mural watch
  mural watch --instance studio`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("redis not accessible at %s: %w", resolveRedisURL(), err)
	}

	sub, err := client.SubscribePixelEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to pixel events: %w", err)
	}
	defer sub.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	printer.Info("watching instance '%s' (Ctrl+C to stop)\n", resolveInstance())

	for {
		select {
		case sig := <-sigCh:
			printer.Info("\nreceived %v, stopping\n", sig)
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			printer.Println(formatEvent(event))
		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			printer.Warning("skipped event: %v\n", err)
		}
	}
}
