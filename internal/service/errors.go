// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrInvalidCredential  = errors.New("invalid credentials")
	ErrInvalidPin         = errors.New("invalid mpin")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrInvalidPinFormat   = errors.New("mpin must be exactly 4 or 6 digits")
	ErrPinReused          = errors.New("new mpin must differ from the current one")
	ErrPasswordReused     = errors.New("new password must differ from the current one")
)

// InvalidPinError reports an MPIN mismatch. Attempt counts the mismatches in
// the current window, including this one. LockedUntil is set only when this
// mismatch locked the account.
//
// errors.Is(err, ErrInvalidPin) matches any *InvalidPinError.
type InvalidPinError struct {
	Attempt     int
	MaxAttempts int
	LockedUntil *time.Time
}

func (e *InvalidPinError) Error() string {
	if e.LockedUntil != nil {
		return fmt.Sprintf("%s: attempt %d of %d, account locked until %s",
			ErrInvalidPin, e.Attempt, e.MaxAttempts, e.LockedUntil.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: attempt %d of %d", ErrInvalidPin, e.Attempt, e.MaxAttempts)
}

func (e *InvalidPinError) Is(target error) bool {
	return target == ErrInvalidPin
}

// AccountLockedError is returned while an MPIN lock is in force.
//
// errors.Is(err, ErrAccountLocked) matches any *AccountLockedError.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrAccountLocked, e.Until.Format(time.RFC3339))
}

func (e *AccountLockedError) Is(target error) bool {
	return target == ErrAccountLocked
}
