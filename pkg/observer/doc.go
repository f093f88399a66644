// Package observer implements the dataflow engine's observer bus
// (spec.md §4.4): a Manager fans each lifecycle event out to every
// registered Observer, in registration order, synchronously.
//
// Grounded on the teacher's pkg/observer.Manager/Observer/Event, with
// the event taxonomy replaced by spec.md §6's catalog (node_start,
// node_output, node_done, node_error, terminal_output, log, ui_update,
// trigger_available, ui_trigger_available, interface_available,
// run_complete, run_error) and Notify changed from the teacher's
// per-observer goroutine fan-out to sequential synchronous dispatch.
package observer
