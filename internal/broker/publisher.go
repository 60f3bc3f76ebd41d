// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/logger"
)

// NewPublisher connects to the configured broker. An empty URL or a failed
// connection yields the logging publisher; startup never fails because of
// the broker.
func NewPublisher(cfg config.Broker, log *logger.Logger) Publisher {
	if cfg.AMQPURL == "" {
		log.Info().Msg("no broker configured, account events will be logged only")
		return NewLoggingPublisher(log)
	}

	publisher, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, log)
	if err != nil {
		log.Warn().Err(err).Msg("broker unavailable, falling back to logging publisher")
		return NewLoggingPublisher(log)
	}

	log.Info().Str("exchange", cfg.Exchange).Msg("broker publisher connected")
	return publisher
}
