// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"

	"github.com/MKhiriev/go-account-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/publisher_mock.go -package=mock

// Publisher delivers account events to downstream consumers.
type Publisher interface {
	// Publish sends a single event. It returns once the broker accepted the
	// message or ctx is done.
	Publish(ctx context.Context, event models.AccountEvent) error

	Close() error
}
