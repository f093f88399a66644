package examplenodes

import (
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

func registerMath(r *registry.Registry) {
	r.Define("add").
		Category("Math").
		Input("a", "int").
		Input("b", "int").
		Output("result", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			a, _ := args["a"].Int()
			b, _ := args["b"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(a + b)}}, nil
		})).
		Register()

	r.Define("multiply").
		Category("Math").
		Input("a", "int").
		Input("b", "int").
		Output("result", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			a, _ := args["a"].Int()
			b, _ := args["b"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(a * b)}}, nil
		})).
		Register()

	r.Define("double").
		Category("Math").
		Input("value", "int").
		Output("result", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(v * 2)}}, nil
		})).
		Register()

	r.Define("triple").
		Category("Math").
		Input("value", "int").
		Output("result", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(v * 3)}}, nil
		})).
		Register()

	r.Define("square").
		Category("Math").
		Input("value", "int").
		Output("result", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(v * v)}}, nil
		})).
		Register()

	// inc is the canonical self-loop node of spec.md §8 scenario 5: its
	// own "value" input is both fed by its own "out" output (the caller
	// wires the self-edge) and seeded once via Init, so the first firing
	// needs no external driver. It never caps itself — per the scenario,
	// a cycle with an init value runs until something external (a
	// fire-count observer calling Executor.Stop) halts it.
	zero := types.Int(0)
	r.Define("inc").
		Category("Math").
		InputWithInit("value", "int", zero).
		Output("out", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "out", Value: types.Int(v + 1)}}, nil
		})).
		Register()
}
