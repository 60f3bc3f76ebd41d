// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request decoding errors. All of them are reported as 400 Bad Request.
var (
	ErrInvalidJSON      = errors.New("invalid JSON was passed")
	ErrInvalidAccountID = errors.New("account id must be a positive integer")
	ErrUnknownStatus    = errors.New("unknown account status")
)
