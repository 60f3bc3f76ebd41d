// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-account-guard/internal/logger"

// Repositories groups every repository backed by one database handle.
type Repositories struct {
	AccountRepository AccountRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		AccountRepository: NewAccountRepository(db, logger),
	}
}
