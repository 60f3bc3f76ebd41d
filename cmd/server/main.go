// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-account-guard/internal/broker"
	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/handler"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/server"
	"github.com/MKhiriev/go-account-guard/internal/service"
	"github.com/MKhiriev/go-account-guard/internal/store"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/internal/workers"
	"github.com/MKhiriev/go-account-guard/models"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultVersion = "dev"

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-account-guard")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == defaultVersion && buildInfo.BuildVersion() != "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("http_address", cfg.Server.HTTPAddress).
		Int("max_mpin_attempts", cfg.App.MaxMpinAttempts).
		Dur("mpin_lock_duration", cfg.App.MpinLockDuration).
		Msg("received configs")

	db, err := store.NewConnect(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	dispatcher := workers.NewEventDispatcher(broker.NewPublisher(cfg.Broker, log), cfg.Workers, log)

	services, err := service.NewServices(store.NewRepositories(db, log), dispatcher, utils.NewUUIDGenerator(), cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(dispatcher), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", orNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
