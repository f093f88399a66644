package scheduler

import "errors"

// ErrMaxFiringsExceeded is the circuit-breaker error surfaced as
// run_error when a firing beyond Config.MaxFirings would be scheduled.
var ErrMaxFiringsExceeded = errors.New("scheduler: max firings exceeded")

// ErrNotRunning is returned by FireTrigger and Stop when called before
// Run or after it has returned.
var ErrNotRunning = errors.New("scheduler: executor is not running")

// ErrUnknownTrigger is returned by FireTrigger when name does not name a
// trigger-kind node in the graph.
var ErrUnknownTrigger = errors.New("scheduler: not a trigger node")

// ErrNilTriggerValue is returned by FireTrigger for a nil value, per
// spec.md §9's Open Question resolution: "treat a missing value as an
// error" rather than silently filtering it, unlike the Python original
// which filtered `value is None` inconsistently.
var ErrNilTriggerValue = errors.New("scheduler: trigger value must not be nil")
