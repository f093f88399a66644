package types

import "context"

// Item is one (branch, value) pair yielded by a node handler during a
// single firing. Branch must name a declared output of the node.
type Item struct {
	Branch string
	Value  Value
}

// Sequence is a finite, possibly-suspending stream of Items produced by
// one firing of a handler. Next returns (zero Item, false, nil) once the
// sequence is exhausted, or a non-nil error if production failed
// mid-stream. Implementations normalize the three handler shapes
// described in spec.md §4.3 (streaming producer, one-shot async,
// synchronous) behind this single iteration contract; see pkg/handler
// for the constructors.
type Sequence interface {
	Next(ctx context.Context) (Item, bool, error)
}

// Handler is the computation bound to a NodeSpec: given the argument map
// popped for one firing, it returns a Sequence of output items. The
// Handler type itself lives in this package (rather than pkg/handler)
// so that NodeSpec can reference it without an import cycle; pkg/handler
// supplies the constructors that build Sequence/Handler values from the
// three concrete handler shapes.
type Handler func(ctx context.Context, args map[string]Value) (Sequence, error)
