// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-account-guard/internal/broker"
	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/MKhiriev/go-account-guard/models"
)

const (
	defaultEventQueueSize = 256
	defaultPublishTimeout = 5 * time.Second
)

// EventDispatcher buffers account events and publishes them from a single
// background goroutine. Notify never blocks: when the buffer is full the
// event is dropped and a warning is logged. Publish failures are logged and
// not retried.
type EventDispatcher struct {
	publisher      broker.Publisher
	queue          chan models.AccountEvent
	publishTimeout time.Duration
	dropped        atomic.Int64

	logger *logger.Logger
}

func NewEventDispatcher(publisher broker.Publisher, cfg config.Workers, logger *logger.Logger) *EventDispatcher {
	size := cfg.EventQueueSize
	if size < 1 {
		size = defaultEventQueueSize
	}
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	return &EventDispatcher{
		publisher:      publisher,
		queue:          make(chan models.AccountEvent, size),
		publishTimeout: timeout,
		logger:         logger,
	}
}

// Notify enqueues event for delivery.
func (d *EventDispatcher) Notify(ctx context.Context, event models.AccountEvent) {
	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
		logger.FromContext(ctx).Warn().
			Str("event_id", event.EventID).
			Str("event_type", string(event.Type)).
			Int64("account_id", event.AccountID).
			Msg("event queue is full, event dropped")
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (d *EventDispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Run publishes queued events until ctx is done, then flushes whatever is
// still buffered and closes the publisher.
func (d *EventDispatcher) Run(ctx context.Context) {
	d.logger.Info().Int("queue_size", cap(d.queue)).Msg("event dispatcher started")
	defer d.close()

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx)
			return
		case event := <-d.queue:
			d.publish(ctx, event)
		}
	}
}

func (d *EventDispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.queue:
			d.publish(ctx, event)
		default:
			return
		}
	}
}

// publish is bounded by publishTimeout only; shutdown does not abort an
// in-flight delivery.
func (d *EventDispatcher) publish(ctx context.Context, event models.AccountEvent) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(publishCtx, event); err != nil {
		d.logger.Err(err).
			Str("event_id", event.EventID).
			Str("event_type", string(event.Type)).
			Int64("account_id", event.AccountID).
			Msg("event publishing failed")
	}
}

func (d *EventDispatcher) close() {
	if err := d.publisher.Close(); err != nil {
		d.logger.Err(err).Msg("error closing event publisher")
	}
	d.logger.Info().Int64("dropped", d.Dropped()).Msg("event dispatcher stopped")
}
