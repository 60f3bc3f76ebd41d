// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-account-guard/internal/crypto"
	"github.com/MKhiriev/go-account-guard/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername        = "username"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldDateOfBirth     = "date_of_birth"
	FieldPAN             = "pan"
	FieldMobile          = "mobile"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldMpin            = "mpin"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 128
	dateOfBirthLayout = "2006-01-02"
)

var (
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// AccountValidator implements [Validator] for the account request payloads:
// RegistrationRequest, PasswordLoginRequest, MpinLoginRequest,
// ChangePasswordRequest and ResetMpinRequest. Both value and pointer forms are
// accepted. The first failing rule is returned.
type AccountValidator struct {
	now func() time.Time
}

func NewAccountValidator() Validator {
	return &AccountValidator{now: time.Now}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegistrationRequest:
		return v.validateRegistration(value, fields...)
	case *models.RegistrationRequest:
		return v.validateRegistration(*value, fields...)

	case models.PasswordLoginRequest:
		return v.validatePasswordLogin(value)
	case *models.PasswordLoginRequest:
		return v.validatePasswordLogin(*value)

	case models.MpinLoginRequest:
		return v.validateMpinLogin(value)
	case *models.MpinLoginRequest:
		return v.validateMpinLogin(*value)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value)

	case models.ResetMpinRequest:
		return v.validateResetMpin(value)
	case *models.ResetMpinRequest:
		return v.validateResetMpin(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegistration(req models.RegistrationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldUsername, FieldFirstName, FieldLastName, FieldDateOfBirth, FieldPAN,
			FieldMobile, FieldEmail, FieldPassword, FieldConfirmPassword, FieldMpin,
		}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			n := utf8.RuneCountInString(strings.TrimSpace(req.Username))
			if n < minUsernameLength || n > maxUsernameLength || strings.TrimSpace(req.Username) != req.Username {
				return ErrInvalidUsername
			}
		case FieldFirstName:
			if strings.TrimSpace(req.FirstName) == "" {
				return ErrEmptyFirstName
			}
		case FieldLastName:
			if strings.TrimSpace(req.LastName) == "" {
				return ErrEmptyLastName
			}
		case FieldDateOfBirth:
			dob, err := time.Parse(dateOfBirthLayout, req.DateOfBirth)
			if err != nil || !dob.Before(v.now()) {
				return ErrInvalidDateOfBirth
			}
		case FieldPAN:
			if !panPattern.MatchString(req.PAN) {
				return ErrInvalidPAN
			}
		case FieldMobile:
			if !mobilePattern.MatchString(req.Mobile) {
				return ErrInvalidMobile
			}
		case FieldEmail:
			if !ValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if !ValidPassword(req.Password) {
				return ErrInvalidPassword
			}
		case FieldConfirmPassword:
			if req.Password != req.ConfirmPassword {
				return ErrPasswordMismatch
			}
		case FieldMpin:
			if !crypto.ValidMpinFormat(req.Mpin) {
				return ErrInvalidMpin
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validatePasswordLogin(req models.PasswordLoginRequest) error {
	if strings.TrimSpace(req.Identifier) == "" {
		return ErrEmptyIdentifier
	}
	if req.Password == "" {
		return ErrInvalidPassword
	}
	return nil
}

func (v *AccountValidator) validateMpinLogin(req models.MpinLoginRequest) error {
	if strings.TrimSpace(req.Identifier) == "" {
		return ErrEmptyIdentifier
	}
	if req.Mpin == "" {
		return ErrInvalidMpin
	}
	return nil
}

// validateChangePassword only checks presence; length and reuse rules are
// enforced by the account service against the stored hash.
func (v *AccountValidator) validateChangePassword(req models.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrInvalidPassword
	}
	return nil
}

func (v *AccountValidator) validateResetMpin(req models.ResetMpinRequest) error {
	if req.NewMpin == "" {
		return ErrInvalidMpin
	}
	return nil
}

// ValidPassword reports whether password has an accepted length.
func ValidPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= MinPasswordLength && n <= MaxPasswordLength
}

// ValidEmail accepts a bare address ("user@example.com") and rejects display
// names ("User <user@example.com>").
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && addr.Name == ""
}
