// Package middleware provides net/http middleware for the control surface
// in pkg/server: request logging, rate limiting, body-size limiting, and
// timeouts. These are HTTP-level, cross-cutting concerns; node-level
// cross-cutting concerns (tracing, metrics) are handled by observers in
// pkg/observer and pkg/telemetry instead, since firing is driven
// internally by pkg/scheduler and has no single call site to wrap.
package middleware
