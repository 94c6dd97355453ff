package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/client"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("baseline")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keychain, err := client.NewKeychain(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("create device keychain")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, keychain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	adapters, err := adapter.NewHTTPAdapters(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create backend adapters")
	}

	app, err := client.NewApp(ctx, cfg, storages, adapters, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
