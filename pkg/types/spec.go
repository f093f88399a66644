package types

// InputDef describes one named input of a NodeSpec.
//
// Type is a nominal tag checked only at edge-construction time (spec.md
// §3) — the runtime never re-checks a Value's Kind against it. Init, if
// set, is enqueued once at run start (seeds cycles and constants).
// Default, if set, is used at firing time when the input's queue is
// empty — this only matters for inputs with no inbound edge, since a
// connected input is only ever fired with a popped queue value.
type InputDef struct {
	Type    string
	Init    *Value
	Default *Value
}

// OutputDef describes one named output branch of a NodeSpec.
type OutputDef struct {
	Type string
}

// NodeKind classifies a node's role in the scheduler and observer
// catalog. pkg/registry records one per NodeType (set through the
// builder's Kind method, KindRegular otherwise) and returns it from
// Registry.KindOf, in place of the Python original's TRIGGER_TYPES /
// OUTPUT_TYPES / LOGGER_TYPES module-level constants.
type NodeKind int

const (
	KindRegular NodeKind = iota
	KindTrigger
	KindTerminalOutput
	KindLogger
	KindUIComponent
)

// ParticipantDef is UI-only metadata for interface-backed nodes (legacy
// chat-style interfaces, spec.md §6 interface_available event).
type ParticipantDef struct {
	Name string
	Role string
}

// NodeSpec is a node template: an immutable description of one node
// type, as registered by pkg/registry. A graph instance references a
// NodeSpec by name; the spec itself never changes during a run (spec.md
// §3 "Specs are created at registration/graph-build and are immutable
// during a run").
type NodeSpec struct {
	Name     string
	NodeType string
	Category string

	// InputOrder preserves declaration order; Inputs is keyed by name.
	// Both are needed because Go maps do not preserve iteration order
	// and spec.md requires "insertion order preserved" for inputs.
	InputOrder []string
	Inputs     map[string]InputDef
	Outputs    map[string]OutputDef

	Handler Handler

	InterfaceType string
	Participants  []ParticipantDef
}

// OrderedInputs returns the node's inputs in declaration order.
func (n NodeSpec) OrderedInputs() []string {
	if len(n.InputOrder) > 0 {
		return n.InputOrder
	}
	order := make([]string, 0, len(n.Inputs))
	for name := range n.Inputs {
		order = append(order, name)
	}
	return order
}

// EdgeSpec connects one (source node, source branch) pair to one
// (target node, target input) pair. Multiple EdgeSpecs may share either
// endpoint — spec.md §3 requires the graph to be a multigraph, so
// EdgeSpecs are never deduplicated by endpoint identity.
type EdgeSpec struct {
	SourceNode   string
	SourceBranch string
	TargetNode   string
	TargetInput  string
}

// UniversalType is the nominal type tag that matches any other tag at
// edge-validation time (spec.md §4.1 invariant 2: "type(source_branch)
// == type(target_input) unless either side is the universal tag").
const UniversalType = "any"

// TypesCompatible reports whether a source branch's declared type may
// connect to a target input's declared type.
func TypesCompatible(sourceType, targetType string) bool {
	return sourceType == targetType || sourceType == UniversalType || targetType == UniversalType
}
