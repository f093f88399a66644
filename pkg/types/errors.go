package types

import "errors"

// ErrMissingInput signals the "missing input at fire time" condition of
// spec.md §7.4 — under a correct readiness predicate this should be
// unreachable; if the scheduler observes it, it is treated as a
// scheduler error rather than a handler error.
var ErrMissingInput = errors.New("types: missing input value at fire time")

// ErrUnknownNodeType names the condition of a graph referencing a
// node_type that was never registered. No code in this module returns
// it: pkg/registry reports a missing type through GetSpec's ok result,
// and pkg/server's buildGraph reports it as a validation message.
var ErrUnknownNodeType = errors.New("types: unknown node type")
