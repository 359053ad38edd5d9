package main

import (
	"context"
	"log"
	"os"

	"github.com/sqlagent/sqlagent-cli/internal/buildinfo"
	"github.com/sqlagent/sqlagent-cli/internal/cli"
	"github.com/sqlagent/sqlagent-cli/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
