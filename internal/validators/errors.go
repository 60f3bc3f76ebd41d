// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername    = errors.New("username must be 3 to 64 characters long")
	ErrEmptyFirstName     = errors.New("first name is required")
	ErrEmptyLastName      = errors.New("last name is required")
	ErrInvalidDateOfBirth = errors.New("date of birth must be a past date in YYYY-MM-DD format")
	ErrInvalidPAN         = errors.New("invalid PAN format")
	ErrInvalidMobile      = errors.New("mobile number must be 10 digits")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password must be 8 to 128 characters long")
	ErrPasswordMismatch   = errors.New("password and confirmation do not match")
	ErrInvalidMpin        = errors.New("MPIN must be exactly 4 or 6 digits")
	ErrEmptyIdentifier    = errors.New("identifier is required")
)
