// Package common contains shared constants and sentinel errors used across
// contactdir components.
package common

// RequestIDHeaderName carries the per-request correlation id on outbound
// HTTP calls. The same id is logged on the client side.
const RequestIDHeaderName = "X-Request-ID"

// ServiceName is attached to log records.
const ServiceName = "contactdir-cli"
