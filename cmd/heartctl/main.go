// heartctl - operator console for Mini Heart X
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ashureev/heartx/internal/app"
	"github.com/ashureev/heartx/internal/cli"
	"github.com/ashureev/heartx/internal/config"
)

func main() {
	_ = godotenv.Load()

	console := cli.NewConsole(func(context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		// Logs go to stderr so command output stays clean.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		slog.SetDefault(logger)
		return app.New(cfg, logger)
	})

	runErr := console.NewRootCmd().ExecuteContext(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := console.Close(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", runErr)
		os.Exit(1)
	}
}
