package graph

import (
	"fmt"
	"sort"

	"github.com/flowmesh/dataflow/pkg/types"
)

// Instance is one node in a graph build: a NodeSpec stamped with an
// instance ID unique within this graph, plus the NodeKind the registry
// classified it as (needed here because trigger-kind nodes are exempt
// from the input-coverage check, spec.md §4.1).
type Instance struct {
	ID   string
	Spec types.NodeSpec
	Kind types.NodeKind
}

// EntryBinding identifies a caller-supplied (node, input) binding for
// the purposes of the coverage and cycle-starter checks — the values
// themselves are applied later by pkg/scheduler at run start.
type EntryBinding struct {
	Node  string
	Input string
}

// Graph is the labeled directed multigraph built from a node instance
// list and an edge list, per spec.md §4.1. Edges are never deduplicated
// by endpoint identity: multiple edges between the same (node, branch)
// and (node, input) are legal fan-in/fan-out.
type Graph struct {
	instances map[string]Instance
	order     []string // insertion order, for deterministic iteration
	edges     []types.EdgeSpec
}

// New builds a Graph from node instances and edges. Build performs no
// validation itself (spec.md §4.1 "Build. Produces a labeled directed
// multigraph..."); call Validate separately.
func New(instances []Instance, edges []types.EdgeSpec) *Graph {
	g := &Graph{
		instances: make(map[string]Instance, len(instances)),
		order:     make([]string, 0, len(instances)),
		edges:     edges,
	}
	for _, inst := range instances {
		if _, exists := g.instances[inst.ID]; !exists {
			g.order = append(g.order, inst.ID)
		}
		g.instances[inst.ID] = inst
	}
	return g
}

// GetNode returns the instance with the given ID, or false if absent.
func (g *Graph) GetNode(id string) (Instance, bool) {
	inst, ok := g.instances[id]
	return inst, ok
}

// Nodes returns all instances in insertion order.
func (g *Graph) Nodes() []Instance {
	out := make([]Instance, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.instances[id])
	}
	return out
}

// Edges returns every edge in the graph.
func (g *Graph) Edges() []types.EdgeSpec {
	return g.edges
}

// OutEdges returns edges whose source is nodeID and whose source branch
// equals branch.
func (g *Graph) OutEdges(nodeID, branch string) []types.EdgeSpec {
	var out []types.EdgeSpec
	for _, e := range g.edges {
		if e.SourceNode == nodeID && e.SourceBranch == branch {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns edges whose target is nodeID.
func (g *Graph) InEdges(nodeID string) []types.EdgeSpec {
	var out []types.EdgeSpec
	for _, e := range g.edges {
		if e.TargetNode == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks the graph invariants of spec.md §4.1 and returns a
// list of human-readable errors (empty slice = valid). Checks run in
// order: endpoint existence, type compatibility, input coverage
// (skipping trigger-kind nodes), then cycle-starter presence.
func (g *Graph) Validate(entryBindings map[EntryBinding]struct{}) []string {
	var errs []string
	if entryBindings == nil {
		entryBindings = map[EntryBinding]struct{}{}
	}

	for _, e := range g.edges {
		src, ok := g.instances[e.SourceNode]
		if !ok {
			errs = append(errs, fmt.Sprintf("edge %s->%s: source node %q does not exist", e.SourceNode, e.TargetNode, e.SourceNode))
			continue
		}
		dst, ok := g.instances[e.TargetNode]
		if !ok {
			errs = append(errs, fmt.Sprintf("edge %s->%s: target node %q does not exist", e.SourceNode, e.TargetNode, e.TargetNode))
			continue
		}

		outDef, ok := src.Spec.Outputs[e.SourceBranch]
		if !ok {
			errs = append(errs, fmt.Sprintf("edge %s->%s: source branch %q not in %s's outputs", e.SourceNode, e.TargetNode, e.SourceBranch, e.SourceNode))
			continue
		}
		inDef, ok := dst.Spec.Inputs[e.TargetInput]
		if !ok {
			errs = append(errs, fmt.Sprintf("edge %s->%s: target input %q not in %s's inputs", e.SourceNode, e.TargetNode, e.TargetInput, e.TargetNode))
			continue
		}

		if !types.TypesCompatible(outDef.Type, inDef.Type) {
			errs = append(errs, fmt.Sprintf("edge %s->%s: type mismatch %s -> %s", e.SourceNode, e.TargetNode, outDef.Type, inDef.Type))
		}
	}

	incoming := make(map[string]map[string]bool, len(g.instances))
	for _, e := range g.edges {
		if incoming[e.TargetNode] == nil {
			incoming[e.TargetNode] = map[string]bool{}
		}
		incoming[e.TargetNode][e.TargetInput] = true
	}

	for _, id := range g.order {
		inst := g.instances[id]
		if inst.Kind == types.KindTrigger {
			continue
		}
		for inputName, inputDef := range inst.Spec.Inputs {
			hasEdge := incoming[id][inputName]
			_, hasEntry := entryBindings[EntryBinding{Node: id, Input: inputName}]
			hasInit := inputDef.Init != nil
			hasDefault := inputDef.Default != nil
			if !(hasEdge || hasEntry || hasInit || hasDefault) {
				errs = append(errs, fmt.Sprintf("node %q input %q has no source", id, inputName))
			}
		}
	}

	for _, scc := range g.stronglyConnectedComponents() {
		if len(scc) <= 1 {
			continue
		}
		hasStarter := false
		for _, id := range scc {
			inst := g.instances[id]
			for inputName, inputDef := range inst.Spec.Inputs {
				_, hasEntry := entryBindings[EntryBinding{Node: id, Input: inputName}]
				if inputDef.Init != nil || hasEntry {
					hasStarter = true
					break
				}
			}
			if hasStarter {
				break
			}
		}
		if !hasStarter {
			sorted := append([]string(nil), scc...)
			sort.Strings(sorted)
			errs = append(errs, fmt.Sprintf("cycle %v has no init or entry binding to start it", sorted))
		}
	}

	return errs
}

// stronglyConnectedComponents runs Tarjan's algorithm over the node-to-
// node adjacency implied by edges (branch/input labels are irrelevant to
// strong connectivity). Used only by Validate's cycle-starter check —
// the teacher's Kahn's-algorithm TopologicalSort cannot distinguish a
// startable cycle from an unstartable one, so it is not reused here.
func (g *Graph) stronglyConnectedComponents() [][]string {
	adjacency := make(map[string][]string, len(g.instances))
	for _, e := range g.edges {
		adjacency[e.SourceNode] = append(adjacency[e.SourceNode], e.TargetNode)
	}

	index := 0
	indices := make(map[string]int, len(g.instances))
	lowlink := make(map[string]int, len(g.instances))
	onStack := make(map[string]bool, len(g.instances))
	var stack []string
	var result [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adjacency[v] {
			if _, visited := indices[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			result = append(result, component)
		}
	}

	for _, id := range g.order {
		if _, visited := indices[id]; !visited {
			strongconnect(id)
		}
	}
	return result
}
