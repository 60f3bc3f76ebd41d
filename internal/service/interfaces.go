// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-account-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies the two independent credential factors. Only the MPIN
// factor counts failures and locks the account.
type AuthService interface {
	VerifyPassword(ctx context.Context, identifier, password string) (models.Account, error)
	VerifyMpin(ctx context.Context, identifier, mpin string) (models.Account, error)
}

// AccountService covers registration, lookups and credential maintenance.
type AccountService interface {
	Register(ctx context.Context, request models.RegistrationRequest) (models.Account, error)

	GetAccount(ctx context.Context, accountID int64) (models.Account, error)
	GetAccountByHandle(ctx context.Context, handle string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error)

	Deactivate(ctx context.Context, accountID int64) (models.Account, error)
	ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) (models.Account, error)
	ResetMpin(ctx context.Context, accountID int64, newMpin string) (models.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error

	// PasswordHistory returns the latest password changes, newest first.
	PasswordHistory(ctx context.Context, accountID int64) ([]models.PasswordHistory, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// EventNotifier receives account lifecycle events. Notify must not block the
// caller on delivery and never reports failures back.
type EventNotifier interface {
	Notify(ctx context.Context, event models.AccountEvent)
}

// IDGenerator produces unique event identifiers.
type IDGenerator interface {
	Generate() string
}
