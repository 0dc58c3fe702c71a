package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dbelyaev/coachbase/internal/client/cli"
	"github.com/dbelyaev/coachbase/internal/client/config"
	"github.com/dbelyaev/coachbase/internal/logging"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config error: %v", err)
		return
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}
