// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-guard/models"
)

// eventEmitter stamps and forwards account events. A nil notifier turns
// emission into a no-op.
type eventEmitter struct {
	notifier EventNotifier
	ids      IDGenerator
	now      func() time.Time
}

func (e eventEmitter) emit(ctx context.Context, eventType models.EventType, account models.Account) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(ctx, models.NewAccountEvent(e.ids.Generate(), eventType, account, e.now().UTC()))
}
