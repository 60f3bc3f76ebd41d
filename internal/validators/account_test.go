// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-account-guard/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegistration() models.RegistrationRequest {
	return models.RegistrationRequest{
		Username:        "alice",
		FirstName:       "Alice",
		LastName:        "Liddell",
		DateOfBirth:     "1990-05-17",
		PAN:             "ABCDE1234F",
		Mobile:          "9876543210",
		Email:           "alice@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		Mpin:            "1234",
	}
}

func newTestValidator() *AccountValidator {
	return &AccountValidator{now: func() time.Time {
		return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	}}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewAccountValidator(t *testing.T) {
	require.NotNil(t, NewAccountValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()
	reg := validRegistration()

	tests := []struct {
		name    string
		obj     any
		wantErr error
	}{
		{name: "registration value", obj: reg},
		{name: "registration pointer", obj: &reg},
		{name: "password login", obj: models.PasswordLoginRequest{Identifier: "alice", Password: "x"}},
		{name: "mpin login pointer", obj: &models.MpinLoginRequest{Identifier: "alice", Mpin: "1234"}},
		{name: "change password", obj: models.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"}},
		{name: "reset mpin", obj: models.ResetMpinRequest{NewMpin: "1234"}},
		{name: "unsupported", obj: 42, wantErr: ErrUnsupportedType},
		{name: "account is not a request", obj: models.Account{}, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.obj)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Registration rules
// ---------------------------------------------------------------------------

func TestValidate_Registration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.RegistrationRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.RegistrationRequest) {}},
		{name: "six digit mpin", mutate: func(r *models.RegistrationRequest) { r.Mpin = "123456" }},
		{name: "username too short", mutate: func(r *models.RegistrationRequest) { r.Username = "al" }, wantErr: ErrInvalidUsername},
		{name: "username too long", mutate: func(r *models.RegistrationRequest) { r.Username = strings.Repeat("a", 65) }, wantErr: ErrInvalidUsername},
		{name: "username padded", mutate: func(r *models.RegistrationRequest) { r.Username = " alice " }, wantErr: ErrInvalidUsername},
		{name: "blank first name", mutate: func(r *models.RegistrationRequest) { r.FirstName = "   " }, wantErr: ErrEmptyFirstName},
		{name: "blank last name", mutate: func(r *models.RegistrationRequest) { r.LastName = "" }, wantErr: ErrEmptyLastName},
		{name: "bad date format", mutate: func(r *models.RegistrationRequest) { r.DateOfBirth = "17/05/1990" }, wantErr: ErrInvalidDateOfBirth},
		{name: "future date", mutate: func(r *models.RegistrationRequest) { r.DateOfBirth = "2030-01-01" }, wantErr: ErrInvalidDateOfBirth},
		{name: "lowercase PAN", mutate: func(r *models.RegistrationRequest) { r.PAN = "abcde1234f" }, wantErr: ErrInvalidPAN},
		{name: "short PAN", mutate: func(r *models.RegistrationRequest) { r.PAN = "ABCD1234F" }, wantErr: ErrInvalidPAN},
		{name: "mobile with letters", mutate: func(r *models.RegistrationRequest) { r.Mobile = "98765abcde" }, wantErr: ErrInvalidMobile},
		{name: "mobile 11 digits", mutate: func(r *models.RegistrationRequest) { r.Mobile = "98765432101" }, wantErr: ErrInvalidMobile},
		{name: "email without domain", mutate: func(r *models.RegistrationRequest) { r.Email = "alice@" }, wantErr: ErrInvalidEmail},
		{name: "email with display name", mutate: func(r *models.RegistrationRequest) { r.Email = "Alice <alice@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "short password", mutate: func(r *models.RegistrationRequest) { r.Password, r.ConfirmPassword = "short", "short" }, wantErr: ErrInvalidPassword},
		{name: "long password", mutate: func(r *models.RegistrationRequest) {
			r.Password = strings.Repeat("p", 129)
			r.ConfirmPassword = r.Password
		}, wantErr: ErrInvalidPassword},
		{name: "confirmation mismatch", mutate: func(r *models.RegistrationRequest) { r.ConfirmPassword = "other-horse" }, wantErr: ErrPasswordMismatch},
		{name: "five digit mpin", mutate: func(r *models.RegistrationRequest) { r.Mpin = "12345" }, wantErr: ErrInvalidMpin},
		{name: "non digit mpin", mutate: func(r *models.RegistrationRequest) { r.Mpin = "12a4" }, wantErr: ErrInvalidMpin},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Registration_FieldScoping(t *testing.T) {
	v := newTestValidator()
	req := validRegistration()
	req.PAN = "bad"

	// PAN is not in scope, so the request passes
	assert.NoError(t, v.Validate(context.Background(), req, FieldEmail, FieldMobile))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldPAN), ErrInvalidPAN)
	assert.ErrorIs(t, v.Validate(context.Background(), req, "nickname"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// Login and maintenance payloads
// ---------------------------------------------------------------------------

func TestValidate_LoginPayloads(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.PasswordLoginRequest{Identifier: " ", Password: "x"}), ErrEmptyIdentifier)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordLoginRequest{Identifier: "alice"}), ErrInvalidPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.MpinLoginRequest{Mpin: "1234"}), ErrEmptyIdentifier)
	assert.ErrorIs(t, v.Validate(ctx, models.MpinLoginRequest{Identifier: "alice"}), ErrInvalidMpin)
	assert.ErrorIs(t, v.Validate(ctx, models.ChangePasswordRequest{OldPassword: "old"}), ErrInvalidPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetMpinRequest{}), ErrInvalidMpin)
}

func TestValidPassword(t *testing.T) {
	assert.False(t, ValidPassword("1234567"))
	assert.True(t, ValidPassword("12345678"))
	assert.True(t, ValidPassword(strings.Repeat("x", 128)))
	assert.False(t, ValidPassword(strings.Repeat("x", 129)))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("bob@example.com"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("bob"))
}
