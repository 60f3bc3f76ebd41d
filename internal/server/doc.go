// Package server wires and runs the application's HTTP server together with
// its background workers.
//
// It owns startup, signal handling and graceful shutdown. The HTTP server is
// stopped first so that no new account events are produced, then the workers
// are cancelled and allowed to drain.
package server
