package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/avetrov/userdeck/internal/client/cli"
	"github.com/avetrov/userdeck/internal/client/config"
	"github.com/avetrov/userdeck/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
