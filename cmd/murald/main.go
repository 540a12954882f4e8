package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/muralhq/mural/internal/canvas"
	"github.com/muralhq/mural/internal/config"
	"github.com/muralhq/mural/internal/httpapi"
	"github.com/muralhq/mural/pkg/pixelboard"
)

func main() {
	configPath := flag.String("config", "", "Path to mural.yml (optional)")
	flag.Parse()

	// 1. Load configuration (file if given, otherwise defaults + env)
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	// 2. Parse Redis URL
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid Redis URL: %v\n", err)
		os.Exit(1)
	}

	// 3. Create canvas client
	client, err := pixelboard.NewClient(redisOpts, cfg.Instance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create canvas client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// 4. Verify Redis connectivity
	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Redis not accessible: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("murald starting for instance '%s' on %s\n", cfg.Instance, cfg.HTTPAddr)

	// 5. Start the read-only HTTP surface
	svc := canvas.New(client)
	api := httpapi.New(svc, client, cfg.HTTPAddr)
	if err := api.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start HTTP server: %v\n", err)
		os.Exit(1)
	}

	// 6. Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	fmt.Printf("Received signal %v, shutting down gracefully...\n", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: HTTP shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("murald stopped")
}
