// Package http implements the REST transport of the account service.
//
// It wires chi routes to the authentication and account services and
// carries the cross-cutting middleware: request tracing, access logging,
// panic recovery, per-request timeouts and response compression. Service
// errors are translated into HTTP status codes and JSON error bodies in one
// place, see errorStatuses.
package http
