// Package broker publishes account lifecycle events.
//
// The RabbitMQ publisher sends every event as a persistent JSON message to a
// durable topic exchange, routed by the lower-case dotted event type
// (for example "account.locked"). When no broker URL is configured, or the
// broker cannot be reached at startup, a publisher that only logs the events
// is used instead.
package broker
