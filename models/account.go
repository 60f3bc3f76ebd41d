// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// AccountStatus is the lifecycle state of an [Account].
type AccountStatus string

const (
	// StatusActive is the initial state; both credentials may be used.
	StatusActive AccountStatus = "ACTIVE"

	// StatusLocked is entered after too many consecutive MPIN mismatches.
	// While LockedUntil is in the future every credential check is refused.
	StatusLocked AccountStatus = "LOCKED"

	// StatusDeactivated is terminal for the authentication core.
	StatusDeactivated AccountStatus = "DEACTIVATED"
)

// ParseAccountStatus converts a case-insensitive status name into an
// [AccountStatus]. The second return value is false for unknown names.
func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch status := AccountStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case StatusActive, StatusLocked, StatusDeactivated:
		return status, true
	default:
		return "", false
	}
}

// Account is the single entity owned by the account store. It carries the
// identifying handles, both credentials and the lockout state.
//
// PasswordHash and Mpin are never serialized and must never be logged.
type Account struct {
	// AccountID is assigned by the store and never changes afterwards.
	AccountID int64 `json:"id"`

	// Username is the primary login handle.
	Username string `json:"username"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`

	// PAN is the permanent account number (tax id), unique per account.
	PAN string `json:"pan"`

	// Mobile and Email are alternate unique handles usable for lookup.
	Mobile string `json:"mobile"`
	Email  string `json:"email"`

	// PasswordHash is the bcrypt digest of the password.
	PasswordHash string `json:"-"`

	// Mpin is the 4 or 6 digit numeric PIN.
	Mpin string `json:"-"`

	Status AccountStatus `json:"status"`

	// FailedMpinAttempts counts consecutive MPIN mismatches in the current window.
	FailedMpinAttempts int `json:"failed_mpin_attempts"`

	// LockedUntil is set if and only if Status is StatusLocked.
	LockedUntil *time.Time `json:"locked_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsLockedAt reports whether the account is locked and the lock window has
// not yet elapsed at the given moment.
func (a Account) IsLockedAt(now time.Time) bool {
	return a.Status == StatusLocked && a.LockedUntil != nil && a.LockedUntil.After(now)
}

// AccountKey selects a single account for a locked read-modify-write cycle.
// Exactly one of AccountID or Handle is expected to be set; AccountID wins
// when both are present.
type AccountKey struct {
	AccountID int64
	Handle    string
}

// ByID builds an [AccountKey] that selects an account by its identifier.
func ByID(id int64) AccountKey {
	return AccountKey{AccountID: id}
}

// ByHandle builds an [AccountKey] that selects an account by any unique handle.
func ByHandle(handle string) AccountKey {
	return AccountKey{Handle: handle}
}
