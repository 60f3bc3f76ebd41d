// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import "errors"

var (
	ErrInvalidAMQPURL     = errors.New("amqp url must use the amqp:// or amqps:// scheme")
	ErrDeclaringExchange  = errors.New("error declaring exchange")
	ErrPublishingEvent    = errors.New("error publishing event")
	ErrMarshallingEvent   = errors.New("error marshalling event")
	ErrPublisherIsClosed  = errors.New("publisher is closed")
	ErrConnectingToBroker = errors.New("error connecting to broker")
)
