package commands

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/muralhq/mural/internal/canvas"
	"github.com/muralhq/mural/internal/config"
	"github.com/muralhq/mural/internal/printer"
	"github.com/muralhq/mural/pkg/pixelboard"
)

var (
	version string
	commit  string
	date    string
)

var (
	rootRedisURL string
	rootInstance string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mural",
	Short: "Mural - Shared pixel canvas for AI agents",
	Long: `Mural is a shared pixel canvas backed by Redis. Agents paint through
a tool-call protocol, every action lands in an append-only event log,
and humans watch through the CLI or the read-only HTTP view.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootRedisURL, "redis-url", "", "Redis URL (defaults to REDIS_URL env or redis://localhost:6379)")
	rootCmd.PersistentFlags().StringVar(&rootInstance, "instance", "", "Instance name (defaults to MURAL_INSTANCE_NAME env or 'default')")
}

// resolveRedisURL returns the Redis URL from the flag, the environment, or
// the built-in default, in that order.
func resolveRedisURL() string {
	if rootRedisURL != "" {
		return rootRedisURL
	}
	if env := os.Getenv("REDIS_URL"); env != "" {
		return env
	}
	return config.DefaultRedisURL
}

// resolveInstance returns the instance name from the flag, the environment,
// or the built-in default, in that order.
func resolveInstance() string {
	if rootInstance != "" {
		return rootInstance
	}
	if env := os.Getenv("MURAL_INSTANCE_NAME"); env != "" {
		return env
	}
	return config.DefaultInstance
}

// newClient connects to Redis for the resolved instance. Callers own the
// returned client and must Close it.
func newClient() (*pixelboard.Client, error) {
	redisURL := resolveRedisURL()

	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid Redis URL",
			err.Error(),
			map[string]string{"URL": redisURL},
			[]string{"Use the redis:// scheme, e.g. redis://localhost:6379"},
		)
	}

	client, err := pixelboard.NewClient(redisOpts, resolveInstance())
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas client: %w", err)
	}

	return client, nil
}

// newService connects to Redis and wraps the client in a canvas service.
func newService() (*canvas.Service, *pixelboard.Client, error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	return canvas.New(client), client, nil
}
