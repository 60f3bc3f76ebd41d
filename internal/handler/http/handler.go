// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/service"
	"github.com/MKhiriev/go-account-guard/internal/utils"
	"github.com/MKhiriev/go-account-guard/internal/validators"
)

const defaultRequestTimeout = 30 * time.Second

type traceIDGenerator interface {
	Generate() string
}

type Handler struct {
	services       *service.Services
	validator      validators.Validator
	traceIDs       traceIDGenerator
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	logger.Info().Dur("request_timeout", timeout).Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewAccountValidator(),
		traceIDs:       utils.NewUUIDGenerator(),
		requestTimeout: timeout,
		logger:         logger,
	}
}
