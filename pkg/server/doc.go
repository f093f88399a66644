// Package server exposes the control surface described in spec.md §6: a
// small HTTP+WebSocket API layered over pkg/registry, pkg/graph, and
// pkg/scheduler. It holds exactly one active graph and one active run at
// a time, matching the single-engine-instance scope of spec.md — it is
// not a multi-tenant workflow host.
package server
