package examplenodes

import (
	"fmt"

	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

// registerFaulty registers "flaky", the node spec.md §8 scenario 6 uses
// on the left branch of its error-isolation demo: it always returns an
// error, so the scheduler must report node_error for this firing
// without aborting sibling firings or the run as a whole.
func registerFaulty(r *registry.Registry) {
	r.Define("flaky").
		Category("Utility").
		Input("value", "any").
		Output("out", "any").
		Handler(handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return nil, fmt.Errorf("flaky: simulated handler failure")
		})).
		Register()
}
