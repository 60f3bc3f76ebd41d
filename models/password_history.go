// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PasswordHistory is an audit record appended whenever an account's password
// hash is replaced. PasswordHash holds the digest that was replaced.
type PasswordHistory struct {
	HistoryID    int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	PasswordHash string    `json:"-"`
	ChangedAt    time.Time `json:"changed_at"`
}
