package examplenodes

import (
	"github.com/flowmesh/dataflow/pkg/graph"
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

func registerIO(r *registry.Registry) {
	// terminal_input is the canonical trigger node of spec.md §8 scenario
	// 1: it declares no inputs and is never scheduled by the readiness
	// predicate (kind trigger). Values only enter the graph through it
	// via Executor.FireTrigger, which routes directly to its "out"
	// branch without invoking a handler.
	r.Define("terminal_input").
		Category("Input").
		Output("out", "int").
		Kind(types.KindTrigger).
		Register()

	r.Define("text_input").
		Category("Input").
		Output("out", "string").
		Kind(types.KindTrigger).
		Register()

	// terminal_output is the universal sink: per spec.md §4.2.3, the
	// event catalog is driven by each yielded item, so the sink's
	// handler must echo the value it consumed rather than yield
	// nothing — that echo is what the scheduler reports to observers
	// as a terminal_output event.
	r.Define("terminal_output").
		Category("Output").
		Input("value", "any").
		Kind(types.KindTerminalOutput).
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "value", Value: args["value"]}}, nil
		})).
		Register()

	// logger is a side-branch sink (spec.md §8 scenario 2): its echoed
	// item is reported as a log event.
	r.Define("logger").
		Category("Output").
		Input("value", "any").
		Kind(types.KindLogger).
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "value", Value: args["value"]}}, nil
		})).
		Register()

	// const_int echoes its "value" input, which a graph supplies per
	// instance (a default, an Init or an edge); ConstInt below builds a
	// standalone instance with the value baked in as Init.
	r.Define("const_int").
		Category("Input").
		Input("value", "int").
		Output("out", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "out", Value: args["value"]}}, nil
		})).
		Register()
}

// ConstInt builds a one-shot constant-source instance: a "const_int"
// node whose single input is seeded once via Init with value and never
// reconnected, so it fires exactly once for the lifetime of a run
// (spec.md §8 scenario 3, "fan-in sum").
func ConstInt(instanceID string, value int64) graph.Instance {
	seed := types.Int(value)
	spec := types.NodeSpec{
		Name:       instanceID,
		NodeType:   "const_int",
		Category:   "Input",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": {Type: "int", Init: &seed}},
		Outputs:    map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "out", Value: args["value"]}}, nil
		}),
	}
	return graph.Instance{ID: instanceID, Spec: spec}
}
