package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the canvas tools over stdio",
	Long: `Serve the four canvas tools (get_canvas, set_pixel, set_pixels,
get_events) over stdin/stdout for an agent host to connect to.

The process stays in the foreground until the client disconnects.
Diagnostics go to stderr; stdout carries only protocol traffic.

Examples:
  # Serve the default instance
  mural serve

  # Serve a named instance on a remote Redis
  mural serve --instance studio --redis-url redis://redis:6379`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, client, err := newService()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		return fmt.Errorf("redis not accessible at %s: %w", resolveRedisURL(), err)
	}

	// stdout belongs to the protocol, so the banner goes to stderr.
	fmt.Fprintf(os.Stderr, "mural tool server ready (instance '%s')\n", resolveInstance())

	return tools.New(svc, version).ServeStdio()
}
