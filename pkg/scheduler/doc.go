// Package scheduler is the dataflow engine's firing loop (spec.md
// §4.2): per-input FIFO queues, a readiness predicate, branch routing,
// fan-in/fan-out, trigger dispatch, and observer fan-out, all guarded
// by a single mutex per Executor.
//
// Grounded on original_source/core/executor.py for algorithm shape
// (input_queues, running, scheduled, _is_ready, _schedule_ready,
// _run_node) and on the teacher's pkg/engine.Engine for Go structuring
// conventions (mutex-guarded counters, context-scoped run ID,
// structured logger field chaining, observer notification helpers).
// The concurrency primitive is golang.org/x/sync/errgroup.Group,
// standing in for the Python original's anyio task group — one Group
// per Run() call, bound to that run's lifetime.
package scheduler
