// Package handler normalizes the three node handler shapes of spec.md
// §4.3 (streaming producer, one-shot asynchronous, synchronous) into
// the single types.Sequence iteration contract the scheduler consumes.
//
// Grounded on core/executor.py's dispatch on inspect.isasyncgenfunction
// / iscoroutinefunction / plain sync call, generalized to Go's static
// typing as three explicit constructors rather than runtime introspection.
package handler
