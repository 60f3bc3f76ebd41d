// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeKind = "topic"
	dialTimeout  = 5 * time.Second
)

// amqpChannel is the subset of *amqp.Channel the publisher relies on.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	closed   bool

	logger *logger.Logger
}

// NewAMQPPublisher dials RabbitMQ, opens a channel and declares the durable
// topic exchange.
func NewAMQPPublisher(amqpURL, exchange string, log *logger.Logger) (Publisher, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectingToBroker, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectingToBroker, err)
	}

	publisher, err := newAMQPPublisher(channel, exchange, log)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	publisher.conn = conn

	return publisher, nil
}

func newAMQPPublisher(channel amqpChannel, exchange string, log *logger.Logger) (*amqpPublisher, error) {
	err := channel.ExchangeDeclare(
		exchange,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDeclaringExchange, exchange, err)
	}

	return &amqpPublisher{
		channel:  channel,
		exchange: exchange,
		logger:   log,
	}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event models.AccountEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshallingEvent, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherIsClosed
	}

	routingKey := event.Type.RoutingKey()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrPublishingEvent, event.EventID, err)
	}

	p.logger.Debug().
		Str("exchange", p.exchange).
		Str("routing_key", routingKey).
		Str("event_id", event.EventID).
		Msg("event published")
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.channel != nil {
		errs = append(errs, ignoreClosed(p.channel.Close()))
	}
	if p.conn != nil {
		errs = append(errs, ignoreClosed(p.conn.Close()))
	}
	return errors.Join(errs...)
}

func ignoreClosed(err error) error {
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")

	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAMQPURL, err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", ErrInvalidAMQPURL
	}

	// An empty path selects the default vhost; an explicit vhost is kept as is.
	if u.Path == "" {
		u.Path = "/"
		return u.String(), nil
	}
	return clean, nil
}
