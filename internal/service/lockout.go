// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/models"
)

const (
	defaultMaxMpinAttempts  = 3
	defaultMpinLockDuration = 24 * time.Hour
)

// LockoutPolicy holds the MPIN lockout threshold and window.
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration
}

func NewLockoutPolicy(cfg config.App) LockoutPolicy {
	policy := LockoutPolicy{
		MaxAttempts:  cfg.MaxMpinAttempts,
		LockDuration: cfg.MpinLockDuration,
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = defaultMaxMpinAttempts
	}
	if policy.LockDuration <= 0 {
		policy.LockDuration = defaultMpinLockDuration
	}
	return policy
}

// OnMismatch counts a wrong MPIN. Reaching MaxAttempts locks the account for
// LockDuration from now and resets the counter.
func (p LockoutPolicy) OnMismatch(account models.Account, now time.Time) (models.Account, *InvalidPinError) {
	attempt := account.FailedMpinAttempts + 1
	pinErr := &InvalidPinError{Attempt: attempt, MaxAttempts: p.MaxAttempts}

	if attempt >= p.MaxAttempts {
		until := now.Add(p.LockDuration)
		account.Status = models.StatusLocked
		account.LockedUntil = &until
		account.FailedMpinAttempts = 0
		pinErr.LockedUntil = &until
		return account, pinErr
	}

	account.FailedMpinAttempts = attempt
	return account, pinErr
}

// OnMatch clears the counter and any lock, expired or not.
func (p LockoutPolicy) OnMatch(account models.Account) models.Account {
	account.FailedMpinAttempts = 0
	account.Status = models.StatusActive
	account.LockedUntil = nil
	return account
}
