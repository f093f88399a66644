package examplenodes

import (
	"github.com/flowmesh/dataflow/pkg/expression"
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

// registerExpression registers "expression", a domain-stack node that
// exercises pkg/expression's expr-lang-backed evaluator directly (as
// opposed to pkg/registry's hot-load path, which compiles a whole
// handler body from an expr-lang string). "formula" names a constant
// expr-lang expression; "value" feeds it as the expression's "item" and
// "input" bindings.
func registerExpression(r *registry.Registry) {
	r.Define("expression").
		Category("Integration").
		Input("formula", "string").
		Input("value", "any").
		Output("result", "any").
		Output("error", "string").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			formula, _ := args["formula"].Str()
			result, err := expression.EvaluateExpression(formula, args["value"].Unwrap(), nil)
			if err != nil {
				return []types.Item{{Branch: "error", Value: types.String(err.Error())}}, nil
			}
			return []types.Item{{Branch: "result", Value: types.FromAny(result)}}, nil
		})).
		Register()
}
