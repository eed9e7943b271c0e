package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/contactdir/internal/buildinfo"
	"github.com/dmitrijs2005/contactdir/internal/client/cli"
	"github.com/dmitrijs2005/contactdir/internal/client/config"
	"github.com/dmitrijs2005/contactdir/internal/common"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, common.ServiceName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error(ctx, "client setup failed", "error", err)
		return
	}

	app.Run(ctx)

}
