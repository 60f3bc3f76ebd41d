// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/crypto"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/store"
	"github.com/MKhiriev/go-account-guard/internal/validators"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	AppInfoService AppInfoService
}

func NewServices(
	repositories *store.Repositories,
	notifier EventNotifier,
	ids IDGenerator,
	cfg config.App,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)

	return &Services{
		AuthService:    NewAuthService(repositories.AccountRepository, hasher, NewLockoutPolicy(cfg), notifier, ids, logger),
		AccountService: NewAccountService(repositories.AccountRepository, hasher, validators.NewAccountValidator(), notifier, ids, logger),
		AppInfoService: appInfoService,
	}, nil
}
