package server

import (
	"net/http"
	"strings"

	"github.com/flowmesh/dataflow/pkg/registry"
)

// builtinExamples seeds GET /examples with two graphs built entirely
// from the registered example-node catalog, mirroring the scenarios
// pkg/examplenodes' own tests exercise directly against the scheduler.
func builtinExamples(r *registry.Registry) map[string]ExampleGraph {
	return map[string]ExampleGraph{
		"even-odd": {
			Key:         "even-odd",
			Name:        "Even/odd routing",
			Description: "A trigger feeds is_even, which routes to double or triple before a terminal sink.",
			Graph: GraphRequest{
				Instances: []InstanceDTO{
					{ID: "in", Type: "terminal_input"},
					{ID: "is_even", Type: "is_even"},
					{ID: "double", Type: "double"},
					{ID: "triple", Type: "triple"},
					{ID: "out", Type: "terminal_output"},
				},
				Edges: []EdgeDTO{
					{Source: "in", SourceHandle: "out", Target: "is_even", TargetHandle: "value"},
					{Source: "is_even", SourceHandle: "yes", Target: "double", TargetHandle: "value"},
					{Source: "is_even", SourceHandle: "no", Target: "triple", TargetHandle: "value"},
					{Source: "double", SourceHandle: "result", Target: "out", TargetHandle: "value"},
					{Source: "triple", SourceHandle: "result", Target: "out", TargetHandle: "value"},
				},
			},
		},
		"fan-in-sum": {
			Key:         "fan-in-sum",
			Name:        "Fan-in sum",
			Description: "Two constant sources feed add, producing a single summed output.",
			Graph: GraphRequest{
				Instances: []InstanceDTO{
					{ID: "a_src", Type: "const_int", GlobalBindings: map[string]string{"value": "a"}},
					{ID: "b_src", Type: "const_int", GlobalBindings: map[string]string{"value": "b"}},
					{ID: "sum", Type: "add"},
					{ID: "out", Type: "terminal_output"},
				},
				Edges: []EdgeDTO{
					{Source: "a_src", SourceHandle: "out", Target: "sum", TargetHandle: "a"},
					{Source: "b_src", SourceHandle: "out", Target: "sum", TargetHandle: "b"},
					{Source: "sum", SourceHandle: "result", Target: "out", TargetHandle: "value"},
				},
				GlobalVariables: map[string]any{"a": 10, "b": 32},
			},
		},
	}
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	out := make([]ExampleGraph, 0, len(s.examples))
	for _, ex := range s.examples {
		out = append(out, ex)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExampleByKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/examples/")
	ex, ok := s.examples[key]
	if !ok {
		http.Error(w, "example not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}
