package examplenodes

import "github.com/flowmesh/dataflow/pkg/registry"

// Register installs the full built-in node catalog into r. pkg/server.New
// calls it before any hot-load manifests are read (spec.md §4.5:
// built-ins are registered first, user nodes layer over them), and
// POST /reload-nodes calls it again to re-register the built-ins.
func Register(r *registry.Registry) {
	registerIO(r)
	registerMath(r)
	registerBranching(r)
	registerStrings(r)
	registerFaulty(r)
	registerHTTPRequest(r)
	registerExpression(r)
}
