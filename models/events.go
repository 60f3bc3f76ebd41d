// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// EventType names a lifecycle change of an account that is announced to
// other services.
type EventType string

const (
	EventUserRegistered     EventType = "USER_REGISTERED"
	EventAccountLocked      EventType = "ACCOUNT_LOCKED"
	EventAccountDeactivated EventType = "ACCOUNT_DEACTIVATED"
	EventPasswordChanged    EventType = "PASSWORD_CHANGED"
	EventMpinReset          EventType = "MPIN_RESET"
)

// RoutingKey returns the broker routing key for the event type,
// e.g. "user.registered" for USER_REGISTERED.
func (t EventType) RoutingKey() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", ".")
}

// AccountEvent is the fire-and-forget notification payload. It carries the
// account id and stable handles only, never credentials.
type AccountEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	AccountID  int64     `json:"account_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAccountEvent builds an event of the given type for account.
func NewAccountEvent(eventID string, eventType EventType, account Account, at time.Time) AccountEvent {
	return AccountEvent{
		EventID:    eventID,
		Type:       eventType,
		AccountID:  account.AccountID,
		Username:   account.Username,
		Email:      account.Email,
		OccurredAt: at,
	}
}
