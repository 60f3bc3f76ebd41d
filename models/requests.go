// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegistrationRequest is the payload accepted when a new account is created.
// Password and ConfirmPassword are plaintext and must never be logged.
type RegistrationRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"date_of_birth"`
	PAN             string `json:"pan"`
	Mobile          string `json:"mobile"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Mpin            string `json:"mpin"`
}

// PasswordLoginRequest carries a handle and the plaintext password.
type PasswordLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// MpinLoginRequest carries a handle (mobile or email) and the MPIN.
type MpinLoginRequest struct {
	Identifier string `json:"identifier"`
	Mpin       string `json:"mpin"`
}

// ChangePasswordRequest carries the current and the desired password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetMpinRequest carries the desired MPIN.
type ResetMpinRequest struct {
	NewMpin string `json:"new_mpin"`
}
