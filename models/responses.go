// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ErrorResponse is the JSON body written for every failed request.
// Attempt, MaxAttempts and LockedUntil are filled for MPIN failures and
// lockouts so that clients can tell the user how many tries remain.
type ErrorResponse struct {
	Error       string     `json:"error"`
	Attempt     int        `json:"attempt,omitempty"`
	MaxAttempts int        `json:"max_attempts,omitempty"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
