// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults returns the configuration values used for every field left empty
// by the other sources.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:          "dev",
			BcryptCost:       10,
			MaxMpinAttempts:  3,
			MpinLockDuration: 24 * time.Hour,
		},
		Storage: Storage{
			DB: DB{Driver: DriverPostgres},
		},
		Server: Server{
			RequestTimeout: 30 * time.Second,
		},
		Broker: Broker{
			Exchange: "user-events",
		},
		Workers: Workers{
			EventQueueSize: 256,
			PublishTimeout: 5 * time.Second,
		},
	}
}
