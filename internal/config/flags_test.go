// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only host no port", addr: NetAddress{Host: "localhost", Port: 0}, expected: "localhost:0"},
		{name: "only port no host", addr: NetAddress{Host: "", Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedHost string
		expectedPort int
	}{
		{name: "valid localhost", input: "localhost:8080", expectedHost: "localhost", expectedPort: 8080},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedHost: "127.0.0.1", expectedPort: 9090},
		{name: "empty host", input: ":8080", expectedHost: "", expectedPort: 8080},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non-numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "negative port", input: "localhost:-1", expectError: true},
		{name: "invalid IP", input: "999.1.1.1:8080", expectError: true},
		{name: "hostname is not an IP", input: "example.com:8080", expectError: true},
		{name: "too many colons", input: "a:b:c", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHost, addr.Host)
			assert.Equal(t, tt.expectedPort, addr.Port)
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *StructuredConfig
	}{
		{
			name:     "no flags",
			args:     nil,
			expected: &StructuredConfig{},
		},
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8080",
				"-d", "postgres://localhost/accounts",
				"-driver", "postgres",
				"-c", "/etc/guard.json",
				"-amqp-url", "amqp://localhost:5672/",
				"-exchange", "events",
				"-bcrypt-cost", "11",
				"-max-mpin-attempts", "5",
				"-mpin-lock-duration", "1h",
				"-request-timeout", "10s",
			},
			expected: &StructuredConfig{
				App: App{BcryptCost: 11, MaxMpinAttempts: 5, MpinLockDuration: time.Hour},
				Storage: Storage{DB: DB{
					Driver: "postgres",
					DSN:    "postgres://localhost/accounts",
				}},
				Server:       Server{HTTPAddress: "127.0.0.1:8080", RequestTimeout: 10 * time.Second},
				Broker:       Broker{AMQPURL: "amqp://localhost:5672/", Exchange: "events"},
				JSONFilePath: "/etc/guard.json",
			},
		},
		{
			name: "config alias",
			args: []string{"-config", "/tmp/c.json"},
			expected: &StructuredConfig{
				JSONFilePath: "/tmp/c.json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	cfg, err := ParseFlags([]string{"-a", "not-an-address"})
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg, err := ParseFlags([]string{"-token-duration", "1h"})
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNetAddress_SetAndString(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:9999"))
	assert.Equal(t, "localhost:9999", addr.String())
}
