package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/wotracker/internal/buildinfo"
	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server"
	"github.com/dmitrijs2005/wotracker/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
