// Package types provides the shared data model for the dataflow engine.
//
// It defines the immutable descriptions the rest of the engine operates
// over — the universal [Value] union, per-node [InputDef]/[OutputDef]
// descriptions, the [NodeSpec] template a node instance is stamped from,
// and [EdgeSpec] connecting two nodes. None of these types reference the
// scheduler, registry, or handler packages, which keeps this the leaf of
// the dependency graph.
package types
