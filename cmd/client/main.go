// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is an operator CLI for the account API.
//
//	client [-a host:port] [-timeout 10s] <command> [flags]
//
// Commands: register, login, login-mpin, reset-mpin, deactivate, history,
// version. The server address and timeout default to GUARD_SERVER_ADDRESS and
// GUARD_CLIENT_TIMEOUT, which may also come from a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/adapter"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

type clientConfig struct {
	Address string        `env:"GUARD_SERVER_ADDRESS" envDefault:"localhost:8080"`
	Timeout time.Duration `env:"GUARD_CLIENT_TIMEOUT" envDefault:"10s"`
}

func main() {
	log := logger.NewLogger("go-account-guard-client")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	var cfg clientConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("error parsing environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		defaults:  cfg,
		buildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		out:       os.Stdout,
		newAPI: func(address string, timeout time.Duration) (adapter.AccountAPI, error) {
			return adapter.NewHTTPAccountAPI(address, timeout, log)
		},
	}

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
