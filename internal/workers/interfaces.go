// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs several
// workers together, and the EventDispatcher that delivers account events
// off the request path.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is done and the worker has finished its shutdown work.
type Worker interface {
	Run(ctx context.Context)
}
