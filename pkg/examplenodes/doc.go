// Package examplenodes registers the built-in node catalog used by the
// demo graphs and the scheduler's seed scenarios (spec.md §8).
//
// Shapes are grounded on original_source/examples/node_specs.py (input
// and output names per node type); basic_nodes.py's function bodies
// were not retrievable, so each handler's behavior is derived from the
// node's declared name and the concrete expectations spec.md §8 states
// for it. http_request and expression have no Python original — they
// are new nodes added to exercise pkg/httpclient and pkg/expression per
// the domain-stack expansion in SPEC_FULL.md.
package examplenodes
