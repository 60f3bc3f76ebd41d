// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/crypto"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/internal/store"
	"github.com/MKhiriev/go-account-guard/models"
)

// authService verifies passwords and MPINs against the account store.
// The MPIN path runs inside a locked read-modify-write cycle so that
// concurrent wrong attempts on one account are counted exactly.
type authService struct {
	accounts store.AccountRepository
	hasher   crypto.PasswordHasher
	policy   LockoutPolicy
	events   eventEmitter

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService. notifier may be nil.
func NewAuthService(
	accounts store.AccountRepository,
	hasher crypto.PasswordHasher,
	policy LockoutPolicy,
	notifier EventNotifier,
	ids IDGenerator,
	logger *logger.Logger,
) AuthService {
	return newAuthService(accounts, hasher, policy, notifier, ids, time.Now, logger)
}

func newAuthService(
	accounts store.AccountRepository,
	hasher crypto.PasswordHasher,
	policy LockoutPolicy,
	notifier EventNotifier,
	ids IDGenerator,
	now func() time.Time,
	logger *logger.Logger,
) *authService {
	return &authService{
		accounts: accounts,
		hasher:   hasher,
		policy:   policy,
		events:   eventEmitter{notifier: notifier, ids: ids, now: now},
		now:      now,
		logger:   logger,
	}
}

// VerifyPassword checks the password factor. It never changes the MPIN
// counter or the lock state.
//
// Returns the stored account or:
//   - store.ErrAccountNotFound when no handle matches identifier.
//   - *AccountLockedError while an MPIN lock is in force.
//   - ErrInvalidCredential on a password mismatch.
//   - ErrAccountDeactivated or ErrAccountNotActive for a correct password on
//     an account that may not sign in.
func (a *authService) VerifyPassword(ctx context.Context, identifier, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := a.accounts.FindAccount(ctx, identifier)
	if err != nil {
		log.Err(err).Msg("account lookup for password login failed")
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}
	log = log.WithAccount(account.AccountID)

	if account.IsLockedAt(a.now()) {
		log.Warn().Time("locked_until", *account.LockedUntil).Msg("password login on locked account")
		return models.Account{}, &AccountLockedError{Until: *account.LockedUntil}
	}

	if !a.hasher.Verify(password, account.PasswordHash) {
		log.Info().Msg("wrong password")
		return models.Account{}, ErrInvalidCredential
	}

	switch account.Status {
	case models.StatusActive:
		return account, nil
	case models.StatusDeactivated:
		return models.Account{}, ErrAccountDeactivated
	default:
		log.Info().Str("status", string(account.Status)).Msg("password accepted on inactive account")
		return models.Account{}, ErrAccountNotActive
	}
}

// VerifyMpin checks the MPIN factor and drives the lockout state machine.
//
// A mismatch is persisted before the error is returned. The mismatch that
// reaches the threshold locks the account, resets the counter and reports
// the lock end in InvalidPinError.LockedUntil; an ACCOUNT_LOCKED event
// follows once that write is committed.
func (a *authService) VerifyMpin(ctx context.Context, identifier, mpin string) (models.Account, error) {
	log := logger.FromContext(ctx)
	now := a.now()

	account, err := a.accounts.UpdateAccount(ctx, models.ByHandle(identifier), func(current models.Account) (models.Account, bool, error) {
		if current.Status == models.StatusDeactivated {
			return current, false, ErrAccountDeactivated
		}
		if current.IsLockedAt(now) {
			return current, false, &AccountLockedError{Until: *current.LockedUntil}
		}

		if !crypto.MpinMatches(mpin, current.Mpin) {
			next, pinErr := a.policy.OnMismatch(current, now)
			return next, true, pinErr
		}

		return a.policy.OnMatch(current), true, nil
	})

	var pinErr *InvalidPinError
	switch {
	case err == nil:
		return account, nil
	case errors.As(err, &pinErr):
		log = log.WithAccount(account.AccountID)
		if pinErr.LockedUntil != nil {
			log.Warn().Time("locked_until", *pinErr.LockedUntil).Msg("account locked after repeated mpin mismatches")
			a.events.emit(ctx, models.EventAccountLocked, account)
		} else {
			log.Info().Int("attempt", pinErr.Attempt).Int("max_attempts", pinErr.MaxAttempts).Msg("wrong mpin")
		}
		return models.Account{}, err
	case isDomainError(err):
		log.Info().Err(err).Msg("mpin login refused")
		return models.Account{}, err
	default:
		log.Err(err).Msg("mpin verification failed")
		return models.Account{}, fmt.Errorf("mpin verification failed: %w", err)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrAccountDeactivated) ||
		errors.Is(err, ErrAccountLocked) ||
		errors.Is(err, ErrAccountNotActive) ||
		errors.Is(err, ErrInvalidPin) ||
		errors.Is(err, ErrInvalidCredential)
}
