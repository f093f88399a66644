package examplenodes

import (
	"fmt"

	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

func registerStrings(r *registry.Registry) {
	r.Define("to_string").
		Category("String").
		Input("value", "int").
		Output("result", "string").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "result", Value: types.String(args["value"].String())}}, nil
		})).
		Register()

	r.Define("format_result").
		Category("String").
		Input("value", "int").
		Output("result", "string").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "result", Value: types.String(fmt.Sprintf("result: %s", args["value"].String()))}}, nil
		})).
		Register()

	r.Define("concat").
		Category("String").
		Input("a", "string").
		Input("b", "string").
		Output("result", "string").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			a, _ := args["a"].Str()
			b, _ := args["b"].Str()
			return []types.Item{{Branch: "result", Value: types.String(a + b)}}, nil
		})).
		Register()
}
