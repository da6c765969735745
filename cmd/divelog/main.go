package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/cdot/divelog/internal/buildinfo"
	"github.com/cdot/divelog/internal/client/cli"
	"github.com/cdot/divelog/internal/client/config"
	"github.com/cdot/divelog/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Logs go to stderr so they never interleave with the interactive prompt.
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
