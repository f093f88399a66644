package examplenodes

import (
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

func registerBranching(r *registry.Registry) {
	r.Define("is_even").
		Category("Branching").
		Input("value", "int").
		Output("yes", "int").
		Output("no", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			if v%2 == 0 {
				return []types.Item{{Branch: "yes", Value: args["value"]}}, nil
			}
			return []types.Item{{Branch: "no", Value: args["value"]}}, nil
		})).
		Register()

	r.Define("is_positive").
		Category("Branching").
		Input("value", "int").
		Output("positive", "int").
		Output("negative", "int").
		Output("zero", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			switch {
			case v > 0:
				return []types.Item{{Branch: "positive", Value: args["value"]}}, nil
			case v < 0:
				return []types.Item{{Branch: "negative", Value: args["value"]}}, nil
			default:
				return []types.Item{{Branch: "zero", Value: args["value"]}}, nil
			}
		})).
		Register()

	r.Define("compare").
		Category("Branching").
		Input("a", "int").
		Input("b", "int").
		Output("greater", "int").
		Output("less", "int").
		Output("equal", "int").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			a, _ := args["a"].Int()
			b, _ := args["b"].Int()
			switch {
			case a > b:
				return []types.Item{{Branch: "greater", Value: args["a"]}}, nil
			case a < b:
				return []types.Item{{Branch: "less", Value: args["a"]}}, nil
			default:
				return []types.Item{{Branch: "equal", Value: args["a"]}}, nil
			}
		})).
		Register()
}
