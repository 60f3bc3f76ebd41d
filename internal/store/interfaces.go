// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-account-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

// AccountMutation receives the locked snapshot of an account and returns the
// state to persist. When save is false nothing is written. The returned error
// is handed back to the caller of [AccountRepository.UpdateAccount] after the
// write, so a mutation may persist a state and still report a domain error.
type AccountMutation func(current models.Account) (next models.Account, save bool, err error)

// AccountRepository is the account record store.
type AccountRepository interface {
	// FindAccount returns the account whose username, mobile or email equals
	// identifier, in that priority order.
	FindAccount(ctx context.Context, identifier string) (models.Account, error)
	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)

	// SaveAccount inserts the account when AccountID is zero and updates it
	// otherwise. The stored row is returned.
	SaveAccount(ctx context.Context, account models.Account) (models.Account, error)

	// UpdateAccount runs mutation under a per-account lock and persists its
	// result in the same transaction.
	UpdateAccount(ctx context.Context, key models.AccountKey, mutation AccountMutation) (models.Account, error)

	DeleteAccount(ctx context.Context, accountID int64) error

	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error)

	// ListPasswordHistory returns at most limit entries, newest first.
	ListPasswordHistory(ctx context.Context, accountID int64, limit int) ([]models.PasswordHistory, error)
}
