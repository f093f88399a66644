// Package registry maps node type names to types.NodeSpec, per spec.md
// §4.5. It supports three ways specs enter the registry:
//
//   - A builder API (Define) for built-in nodes, standing in for the
//     Python original's @node(...) decorator — Go cannot introspect an
//     arbitrary function's parameter names/types at runtime the way
//     inspect.signature does, so inputs/outputs/handler are declared
//     explicitly instead of derived from a function signature.
//   - LoadDir / LoadFile, which hot-load *.node.yaml manifests from
//     disk: each manifest's handler field is an expr-lang expression
//     string, compiled once at load time into a types.Handler closure.
//     The Python original hot-loads arbitrary .py files; Go cannot
//     exec arbitrary source at runtime, so YAML + a sandboxed
//     expression language is the nearest faithful mechanism.
//   - ClearUserNodes, which removes everything loaded via LoadDir/
//     LoadFile while leaving built-ins untouched.
//
// Duplicate-name handling is last-registration-wins within each of the
// builtin and user-loaded tiers; a user-loaded node shadows a built-in
// of the same name without destroying it, so ClearUserNodes restores
// the original built-in — this is what gives spec.md §8's round-trip
// law ("clearing and re-uploading the same node files yields the same
// registry") a clean implementation.
package registry
