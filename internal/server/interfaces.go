// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until SIGINT, SIGTERM or SIGQUIT is received and every
// component has stopped. Shutdown stops serving HTTP requests.
type Server interface {
	RunServer()
	Shutdown()
}
