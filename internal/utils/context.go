// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the transport layers:
// request-context keys, JSON response writing, the resty HTTP client and
// UUIDv7 generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so values stored here cannot
// collide with string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key under which the account id taken from the
// request path is stored.
var AccountIDCtxKey = contextKey("accountID")

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}

// GetAccountIDFromContext returns the account id stored by WithAccountID.
// ok is false when the value is missing or has an unexpected type.
//
//	accountID, ok := utils.GetAccountIDFromContext(ctx)
//	if !ok {
//	    // route was not mounted under withAccountID
//	}
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}
