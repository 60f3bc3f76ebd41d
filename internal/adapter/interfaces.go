// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the account HTTP API.
//
// [AccountAPI] decouples callers such as the operator CLI from the transport.
// Non-2xx responses are mapped to the sentinel errors in errors.go and wrapped
// in an [*APIError] that keeps the server's message and the MPIN attempt
// details, so callers can use [errors.Is] and [errors.As] alike.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_api_mock.go -package=mock

// AccountAPI mirrors the account service exposed by the server.
type AccountAPI interface {
	// Register creates an account and returns the stored record.
	Register(ctx context.Context, request models.RegistrationRequest) (models.Account, error)

	// LoginWithPassword authenticates by username, mobile or email plus
	// password.
	LoginWithPassword(ctx context.Context, identifier, password string) (models.Account, error)

	// LoginWithMpin authenticates by mobile or email plus MPIN. A mismatch
	// is returned as an *APIError carrying the attempt count.
	LoginWithMpin(ctx context.Context, identifier, mpin string) (models.Account, error)

	GetAccount(ctx context.Context, accountID int64) (models.Account, error)
	GetAccountByHandle(ctx context.Context, handle string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error)

	Deactivate(ctx context.Context, accountID int64) (models.Account, error)
	ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error
	ResetMpin(ctx context.Context, accountID int64, newMpin string) error
	DeleteAccount(ctx context.Context, accountID int64) error

	// PasswordHistory returns the times of the most recent password changes,
	// newest first.
	PasswordHistory(ctx context.Context, accountID int64) ([]time.Time, error)

	// ServerVersion returns the version string reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
