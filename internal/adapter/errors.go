// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrLocked              = errors.New("account locked")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyAddress = errors.New("empty address")
	ErrInvalidURL   = errors.New("address must include host and scheme")
)

// APIError is a non-2xx response from the server. Kind is one of the
// sentinels above; errors.Is matches against it.
type APIError struct {
	Kind        error
	StatusCode  int
	Message     string
	Attempt     int
	MaxAttempts int
	LockedUntil *time.Time
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)", e.Kind, e.StatusCode)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Attempt > 0 {
		fmt.Fprintf(&b, ", attempt %d of %d", e.Attempt, e.MaxAttempts)
	}
	if e.LockedUntil != nil {
		fmt.Fprintf(&b, ", locked until %s", e.LockedUntil.Format(time.RFC3339))
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Kind
}
