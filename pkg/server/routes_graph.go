package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/flowmesh/dataflow/pkg/graph"
	"github.com/flowmesh/dataflow/pkg/scheduler"
	"github.com/flowmesh/dataflow/pkg/types"
)

// buildGraph resolves a GraphRequest against the registry into a
// graph.Graph, per spec.md §4.1's build step. Unknown node types are
// reported as errors rather than causing a panic.
func buildGraph(req GraphRequest, r interface {
	GetSpec(string) (types.NodeSpec, bool)
	KindOf(string) types.NodeKind
}) (*graph.Graph, []string) {
	var errs []string
	instances := make([]graph.Instance, 0, len(req.Instances))

	for _, dto := range req.Instances {
		spec, ok := r.GetSpec(dto.Type)
		if !ok {
			errs = append(errs, fmt.Sprintf("instance %q: unknown node type %q", dto.ID, dto.Type))
			continue
		}

		spec.Name = dto.ID
		if len(dto.Defaults) > 0 || len(dto.GlobalBindings) > 0 {
			inputs := make(map[string]types.InputDef, len(spec.Inputs))
			for name, def := range spec.Inputs {
				inputs[name] = def
			}
			for name, raw := range dto.Defaults {
				def := inputs[name]
				v := types.FromAny(raw)
				def.Default = &v
				inputs[name] = def
			}
			for inputName, varName := range dto.GlobalBindings {
				raw, ok := req.GlobalVariables[varName]
				if !ok {
					errs = append(errs, fmt.Sprintf("instance %q: globalBindings references unknown variable %q", dto.ID, varName))
					continue
				}
				def := inputs[inputName]
				v := types.FromAny(raw)
				def.Init = &v
				inputs[inputName] = def
			}
			spec.Inputs = inputs
		}

		instances = append(instances, graph.Instance{ID: dto.ID, Spec: spec, Kind: r.KindOf(dto.Type)})
	}

	edges := make([]types.EdgeSpec, 0, len(req.Edges))
	for _, e := range req.Edges {
		edges = append(edges, types.EdgeSpec{
			SourceNode:   e.Source,
			SourceBranch: e.SourceHandle,
			TargetNode:   e.Target,
			TargetInput:  e.TargetHandle,
		})
	}

	g := graph.New(instances, edges)
	if len(errs) == 0 {
		errs = append(errs, g.Validate(nil)...)
	}
	return g, errs
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, GraphResponse{Status: "error", Errors: []string{err.Error()}})
		return
	}

	g, errs := buildGraph(req, s.registry)
	if len(errs) > 0 {
		writeJSON(w, http.StatusOK, GraphResponse{Status: "invalid", Errors: errs})
		return
	}

	s.mu.Lock()
	s.g = g
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, GraphResponse{Status: "ok", Errors: nil})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	s.mu.Lock()
	g := s.g
	if g == nil {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, RunResponse{Status: "no graph submitted"})
		return
	}
	if s.exec != nil {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, RunResponse{Status: "run already in progress"})
		return
	}

	entryBindings := make(map[graph.EntryBinding]types.Value, len(req.EntryBindings))
	for nodeID, inputs := range req.EntryBindings {
		for inputName, raw := range inputs {
			entryBindings[graph.EntryBinding{Node: nodeID, Input: inputName}] = types.FromAny(raw)
		}
	}

	runID := uuid.NewString()
	execCfg := scheduler.DefaultConfig()
	execCfg.RunTimeout = s.engineConfig.MaxExecutionTime
	execCfg.PerNodeTimeout = s.engineConfig.MaxNodeExecutionTime
	exec := scheduler.New(g, execCfg, s.observers, runID).SetLogger(s.logger)
	s.exec = exec
	done := make(chan error, 1)
	s.runDone = done
	s.mu.Unlock()

	go func() {
		// POST /run returns as soon as the run starts (spec.md §6:
		// {"status":"started"}), so the run must outlive this request;
		// r.Context() is canceled the moment this handler returns.
		err := exec.Run(context.Background(), entryBindings)
		done <- err
		s.mu.Lock()
		s.exec = nil
		s.mu.Unlock()
	}()

	writeJSON(w, http.StatusOK, RunResponse{Status: "started"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code, err := yaml.Marshal(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ExportResponse{Code: string(code)})
}
