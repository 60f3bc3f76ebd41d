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
	"github.com/MKhiriev/go-account-guard/internal/validators"
	"github.com/MKhiriev/go-account-guard/models"
)

// PasswordHistoryLimit is the number of password changes reported by
// AccountService.PasswordHistory.
const PasswordHistoryLimit = 5

type accountService struct {
	accounts  store.AccountRepository
	hasher    crypto.PasswordHasher
	validator validators.Validator
	events    eventEmitter

	logger *logger.Logger
}

// NewAccountService constructs an AccountService. notifier may be nil.
func NewAccountService(
	accounts store.AccountRepository,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	notifier EventNotifier,
	ids IDGenerator,
	logger *logger.Logger,
) AccountService {
	return newAccountService(accounts, hasher, validator, notifier, ids, time.Now, logger)
}

func newAccountService(
	accounts store.AccountRepository,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	notifier EventNotifier,
	ids IDGenerator,
	now func() time.Time,
	logger *logger.Logger,
) *accountService {
	return &accountService{
		accounts:  accounts,
		hasher:    hasher,
		validator: validator,
		events:    eventEmitter{notifier: notifier, ids: ids, now: now},
		logger:    logger,
	}
}

// Register validates the request, hashes the password and stores a new
// ACTIVE account. USER_REGISTERED is emitted after the insert; a delivery
// failure never undoes the registration.
func (s *accountService) Register(ctx context.Context, request models.RegistrationRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Info().Err(err).Str("username", request.Username).Msg("registration payload rejected")
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := s.hasher.Hash(request.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	account, err := s.accounts.SaveAccount(ctx, models.Account{
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		DateOfBirth:  request.DateOfBirth,
		PAN:          request.PAN,
		Mobile:       request.Mobile,
		Email:        request.Email,
		PasswordHash: hash,
		Mpin:         request.Mpin,
		Status:       models.StatusActive,
	})
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	log.WithAccount(account.AccountID).Info().Msg("account registered")
	s.events.emit(ctx, models.EventUserRegistered, account)

	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID int64) (models.Account, error) {
	account, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccountByHandle(ctx context.Context, handle string) (models.Account, error) {
	if handle == "" {
		return models.Account{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrEmptyIdentifier)
	}

	account, err := s.accounts.FindAccount(ctx, handle)
	if err != nil {
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("account listing failed: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccountsByStatus(ctx context.Context, status models.AccountStatus) ([]models.Account, error) {
	if _, ok := models.ParseAccountStatus(string(status)); !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidDataProvided, status)
	}

	accounts, err := s.accounts.ListAccountsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("account listing failed: %w", err)
	}
	return accounts, nil
}

// Deactivate moves the account to DEACTIVATED from any state. A pending lock
// is dropped together with its end time.
func (s *accountService) Deactivate(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx).WithAccount(accountID)

	account, err := s.accounts.UpdateAccount(ctx, models.ByID(accountID), func(current models.Account) (models.Account, bool, error) {
		current.Status = models.StatusDeactivated
		current.LockedUntil = nil
		return current, true, nil
	})
	if err != nil {
		log.Err(err).Msg("deactivation failed")
		return models.Account{}, fmt.Errorf("deactivation failed: %w", err)
	}

	log.Info().Msg("account deactivated")
	s.events.emit(ctx, models.EventAccountDeactivated, account)

	return account, nil
}

// ChangePassword replaces the password hash after checking the current
// password. The replaced hash is recorded in the password history by the
// store in the same transaction.
func (s *accountService) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) (models.Account, error) {
	log := logger.FromContext(ctx).WithAccount(accountID)

	account, err := s.accounts.UpdateAccount(ctx, models.ByID(accountID), func(current models.Account) (models.Account, bool, error) {
		if !s.hasher.Verify(oldPassword, current.PasswordHash) {
			return current, false, ErrInvalidCredential
		}
		if s.hasher.Verify(newPassword, current.PasswordHash) {
			return current, false, ErrPasswordReused
		}
		if !validators.ValidPassword(newPassword) {
			return current, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidPassword)
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			if errors.Is(err, crypto.ErrPasswordTooLong) {
				return current, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
			}
			return current, false, fmt.Errorf("password hashing failed: %w", err)
		}

		current.PasswordHash = hash
		return current, true, nil
	})
	if err != nil {
		if isMaintenanceRejection(err) {
			log.Info().Err(err).Msg("password change rejected")
			return models.Account{}, err
		}
		log.Err(err).Msg("password change failed")
		return models.Account{}, fmt.Errorf("password change failed: %w", err)
	}

	log.Info().Msg("password changed")
	s.events.emit(ctx, models.EventPasswordChanged, account)

	return account, nil
}

// ResetMpin sets a new MPIN and clears the counter and any lock. It is the
// only way to lift a lock before it expires.
func (s *accountService) ResetMpin(ctx context.Context, accountID int64, newMpin string) (models.Account, error) {
	log := logger.FromContext(ctx).WithAccount(accountID)

	if !crypto.ValidMpinFormat(newMpin) {
		return models.Account{}, ErrInvalidPinFormat
	}

	account, err := s.accounts.UpdateAccount(ctx, models.ByID(accountID), func(current models.Account) (models.Account, bool, error) {
		if current.Status == models.StatusDeactivated {
			return current, false, ErrAccountDeactivated
		}
		if crypto.MpinMatches(newMpin, current.Mpin) {
			return current, false, ErrPinReused
		}

		current.Mpin = newMpin
		current.FailedMpinAttempts = 0
		current.Status = models.StatusActive
		current.LockedUntil = nil
		return current, true, nil
	})
	if err != nil {
		if isMaintenanceRejection(err) {
			log.Info().Err(err).Msg("mpin reset rejected")
			return models.Account{}, err
		}
		log.Err(err).Msg("mpin reset failed")
		return models.Account{}, fmt.Errorf("mpin reset failed: %w", err)
	}

	log.Info().Msg("mpin reset")
	s.events.emit(ctx, models.EventMpinReset, account)

	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	if err := s.accounts.DeleteAccount(ctx, accountID); err != nil {
		logger.FromContext(ctx).WithAccount(accountID).Err(err).Msg("account deletion failed")
		return fmt.Errorf("account deletion failed: %w", err)
	}
	return nil
}

func (s *accountService) PasswordHistory(ctx context.Context, accountID int64) ([]models.PasswordHistory, error) {
	if _, err := s.accounts.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}

	history, err := s.accounts.ListPasswordHistory(ctx, accountID, PasswordHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("password history lookup failed: %w", err)
	}
	return history, nil
}

func isMaintenanceRejection(err error) bool {
	return errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrPasswordReused) ||
		errors.Is(err, ErrPinReused) ||
		errors.Is(err, ErrAccountDeactivated) ||
		errors.Is(err, ErrInvalidDataProvided)
}
