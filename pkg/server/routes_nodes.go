package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/flowmesh/dataflow/pkg/examplenodes"
	"github.com/flowmesh/dataflow/pkg/registry"
	"github.com/flowmesh/dataflow/pkg/types"
)

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	specs := s.registry.Snapshot()
	out := make([]NodeDescriptor, 0, len(specs))
	for _, spec := range specs {
		out = append(out, NodeDescriptor{
			Name:          spec.NodeType,
			Category:      spec.Category,
			Inputs:        spec.OrderedInputs(),
			Outputs:       outputNames(spec.Outputs),
			InterfaceType: spec.InterfaceType,
			Participants:  spec.Participants,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func outputNames(m map[string]types.OutputDef) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// reregisterBuiltins rescans the built-in node catalog (spec.md §6 "Rescan
// built-in nodes"). pkg/registry.Register overwrites in place, so this is
// safe to call repeatedly and never disturbs hot-loaded user nodes.
func reregisterBuiltins(r *registry.Registry) int {
	examplenodes.Register(r)
	return len(r.ListRegisteredTypes())
}

func (s *Server) handleUploadNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UploadNodesRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, UploadNodesResponse{Status: "error"})
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, UploadNodesResponse{Status: "error"})
		return
	}

	loaded := make([]string, 0, len(req.Files))
	for _, raw := range req.Files {
		spec, err := s.registry.LoadBytes(raw)
		if err != nil {
			s.logger.WithError(err).Warn("failed to load user node manifest")
			continue
		}
		loaded = append(loaded, spec.NodeType)
	}

	writeJSON(w, http.StatusOK, UploadNodesResponse{Status: "ok", Loaded: loaded})
}

func (s *Server) handleClearCustomNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.registry.ClearUserNodes()
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (s *Server) handleReloadNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// Re-registering the built-in catalog overwrites each type in place
	// (pkg/registry.Register: "last registration wins"); it does not
	// disturb hot-loaded user nodes, which live in a separate tier.
	count := reregisterBuiltins(s.registry)
	writeJSON(w, http.StatusOK, ReloadNodesResponse{Status: "ok", Count: count})
}
