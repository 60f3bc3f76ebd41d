// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
)

type loggingPublisher struct {
	logger *logger.Logger
}

// NewLoggingPublisher returns a Publisher that writes each event to log and
// never fails.
func NewLoggingPublisher(log *logger.Logger) Publisher {
	return &loggingPublisher{logger: log}
}

func (p *loggingPublisher) Publish(ctx context.Context, event models.AccountEvent) error {
	p.logger.Info().
		Str("routing_key", event.Type.RoutingKey()).
		Str("event_id", event.EventID).
		Str("event_type", string(event.Type)).
		Int64("account_id", event.AccountID).
		Time("occurred_at", event.OccurredAt).
		Msg("account event")
	return nil
}

func (p *loggingPublisher) Close() error {
	return nil
}
