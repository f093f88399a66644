// Package graph builds and validates the dataflow multigraph described
// by spec.md §4.1: a directed graph of NodeSpec instances connected by
// named output->input edges, where parallel edges between the same pair
// of endpoints are legal and meaningful (fan-in/fan-out).
//
// Grounded on the teacher's pkg/graph.Graph (Kahn's-algorithm topo sort
// over a simple DAG), generalized here in two ways the teacher's model
// didn't need: edges are never deduplicated by endpoint (multigraph),
// and cycle handling moves from "any cycle is an error" to "a
// strongly-connected component is only an error if none of its inputs
// has a starter" (Tarjan's algorithm), matching
// original_source/core/graph_topology.py's networkx-based validator.
package graph
