package registry

import (
	"sync"

	"github.com/flowmesh/dataflow/pkg/types"
)

// Registry is a mutex-guarded map from node type name to NodeSpec, split
// into a builtin tier and a user (hot-loaded) tier so ClearUserNodes can
// remove the latter without disturbing the former.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]types.NodeSpec
	user     map[string]types.NodeSpec

	kinds map[string]types.NodeKind
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		builtins: make(map[string]types.NodeSpec),
		user:     make(map[string]types.NodeSpec),
		kinds:    make(map[string]types.NodeKind),
	}
}

// Register adds a built-in NodeSpec, keyed by its NodeType. Last
// registration wins, per spec.md §4.5 — re-registering the same
// NodeType overwrites the previous spec rather than erroring.
func (r *Registry) Register(spec types.NodeSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[spec.NodeType] = spec
}

// MarkKind records the kind tag for a node type (spec.md §3's kind
// tags: trigger, terminal output, logger, UI component). Untagged types
// default to types.KindRegular.
func (r *Registry) MarkKind(nodeType string, kind types.NodeKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[nodeType] = kind
}

// KindOf returns the kind tag registered for nodeType, or KindRegular if
// none was set.
func (r *Registry) KindOf(nodeType string) types.NodeKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if k, ok := r.kinds[nodeType]; ok {
		return k
	}
	return types.KindRegular
}

// GetSpec resolves a node type to its NodeSpec, preferring a user-loaded
// spec over a built-in of the same name.
func (r *Registry) GetSpec(nodeType string) (types.NodeSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if spec, ok := r.user[nodeType]; ok {
		return spec, true
	}
	spec, ok := r.builtins[nodeType]
	return spec, ok
}

// Snapshot returns every currently-registered NodeSpec, user-loaded
// specs overriding built-ins of the same name — callers should rebuild
// any cached "active type table" from this after a reload (spec.md
// §4.5: "callers MUST rebuild the active type table after each reload").
func (r *Registry) Snapshot() []types.NodeSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	merged := make(map[string]types.NodeSpec, len(r.builtins)+len(r.user))
	for k, v := range r.builtins {
		merged[k] = v
	}
	for k, v := range r.user {
		merged[k] = v
	}
	out := make([]types.NodeSpec, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}
	return out
}

// ListRegisteredTypes returns the name of every registered node type,
// mirroring the teacher's Registry.ListRegisteredTypes.
func (r *Registry) ListRegisteredTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(r.builtins)+len(r.user))
	for k := range r.builtins {
		seen[k] = struct{}{}
	}
	for k := range r.user {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	return out
}

// registerUser adds a hot-loaded NodeSpec to the user tier.
func (r *Registry) registerUser(spec types.NodeSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user[spec.NodeType] = spec
}

// ClearUserNodes removes every hot-loaded NodeSpec, restoring whatever
// built-in of the same name (if any) it had shadowed.
func (r *Registry) ClearUserNodes() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = make(map[string]types.NodeSpec)
}
