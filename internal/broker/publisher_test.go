// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-account-guard/internal/config"
	"github.com/MKhiriev/go-account-guard/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPublisher_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	p := NewLoggingPublisher(logger.New(&buf, "test"))

	require.NoError(t, p.Publish(context.Background(), testEvent()))
	require.NoError(t, p.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "account.locked", entry["routing_key"])
	assert.Equal(t, "ACCOUNT_LOCKED", entry["event_type"])
	assert.Equal(t, float64(42), entry["account_id"])
	assert.NotContains(t, buf.String(), "jdoe@example.com")
}

func TestNewPublisher_EmptyURL_UsesLogging(t *testing.T) {
	p := NewPublisher(config.Broker{Exchange: "user-events"}, logger.Nop())

	_, ok := p.(*loggingPublisher)
	assert.True(t, ok)
}

func TestNewPublisher_Unreachable_FallsBackToLogging(t *testing.T) {
	p := NewPublisher(config.Broker{AMQPURL: "ftp://nowhere", Exchange: "user-events"}, logger.Nop())

	_, ok := p.(*loggingPublisher)
	assert.True(t, ok)
}
