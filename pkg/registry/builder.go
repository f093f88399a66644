package registry

import "github.com/flowmesh/dataflow/pkg/types"

// Builder assembles a types.NodeSpec fluently, standing in for the
// Python original's @node(...) decorator (core/node.py), which derived
// InputDefs from a handler's function signature via inspect.signature.
// Go has no equivalent runtime introspection over an arbitrary func
// value's parameter names, so inputs and outputs are declared here
// explicitly instead.
type Builder struct {
	registry *Registry
	spec     types.NodeSpec
	kind     types.NodeKind
}

// Define starts building a NodeSpec for nodeType. Call Register to
// commit it to the registry's builtin tier.
func (r *Registry) Define(nodeType string) *Builder {
	return &Builder{
		registry: r,
		spec: types.NodeSpec{
			NodeType: nodeType,
			Category: "Other",
			Inputs:   make(map[string]types.InputDef),
			Outputs:  make(map[string]types.OutputDef),
		},
	}
}

// Category sets the UI-only grouping label.
func (b *Builder) Category(category string) *Builder {
	b.spec.Category = category
	return b
}

// Input declares a required input with no init or default.
func (b *Builder) Input(name, typeTag string) *Builder {
	b.spec.Inputs[name] = types.InputDef{Type: typeTag}
	b.spec.InputOrder = append(b.spec.InputOrder, name)
	return b
}

// InputWithInit declares an input seeded once at run start — used for
// cycle starters (spec.md §3 "init: ... seeds cycles and constants").
func (b *Builder) InputWithInit(name, typeTag string, init types.Value) *Builder {
	b.spec.Inputs[name] = types.InputDef{Type: typeTag, Init: &init}
	b.spec.InputOrder = append(b.spec.InputOrder, name)
	return b
}

// InputWithDefault declares an input used unconnected, falling back to
// def when its queue is empty at firing time.
func (b *Builder) InputWithDefault(name, typeTag string, def types.Value) *Builder {
	b.spec.Inputs[name] = types.InputDef{Type: typeTag, Default: &def}
	b.spec.InputOrder = append(b.spec.InputOrder, name)
	return b
}

// Output declares an output branch.
func (b *Builder) Output(name, typeTag string) *Builder {
	b.spec.Outputs[name] = types.OutputDef{Type: typeTag}
	return b
}

// Handler attaches the node's computation.
func (b *Builder) Handler(h types.Handler) *Builder {
	b.spec.Handler = h
	return b
}

// Interface attaches UI-interface metadata (legacy chat-style
// interfaces, spec.md §6 interface_available event).
func (b *Builder) Interface(interfaceType string, participants ...types.ParticipantDef) *Builder {
	b.spec.InterfaceType = interfaceType
	b.spec.Participants = participants
	return b
}

// Kind tags the node's role for the scheduler and observer catalog
// (spec.md §3 kind tags). Defaults to types.KindRegular if never called.
func (b *Builder) Kind(kind types.NodeKind) *Builder {
	b.kind = kind
	return b
}

// Build returns the assembled NodeSpec without registering it.
func (b *Builder) Build() types.NodeSpec {
	return b.spec
}

// Register commits the built NodeSpec to the registry's builtin tier
// and records its kind tag, then returns the spec for convenience.
func (b *Builder) Register() types.NodeSpec {
	b.registry.Register(b.spec)
	if b.kind != types.KindRegular {
		b.registry.MarkKind(b.spec.NodeType, b.kind)
	}
	return b.spec
}
