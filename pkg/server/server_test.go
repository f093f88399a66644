package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowmesh/dataflow/pkg/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RequestsPerSecond = 0 // disable rate limiting in tests
	s, err := New(cfg, config.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		s.telemetryProvider.Shutdown(context.Background())
	})
	return s
}

func TestServer_HandleNodes(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes", nil)
	w := httptest.NewRecorder()
	s.handleNodes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out []NodeDescriptor
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected at least one registered node type")
	}
}

func TestServer_HandleGraph_ValidGraph(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"instances": [
			{"id": "a", "type": "const_int", "defaults": {"value": 5}},
			{"id": "b", "type": "const_int", "defaults": {"value": 7}},
			{"id": "sum", "type": "add"},
			{"id": "out", "type": "terminal_output"}
		],
		"edges": [
			{"source": "a", "sourceHandle": "out", "target": "sum", "targetHandle": "a"},
			{"source": "b", "sourceHandle": "out", "target": "sum", "targetHandle": "b"},
			{"source": "sum", "sourceHandle": "result", "target": "out", "targetHandle": "value"}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/graph", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handleGraph(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp GraphResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q, errors: %v", resp.Status, resp.Errors)
	}

	s.mu.Lock()
	g := s.g
	s.mu.Unlock()
	if g == nil {
		t.Error("expected graph to be stored on server after a valid submission")
	}
}

func TestServer_HandleGraph_UnknownNodeType(t *testing.T) {
	s := newTestServer(t)

	body := `{"instances": [{"id": "a", "type": "no_such_node"}], "edges": []}`
	req := httptest.NewRequest(http.MethodPost, "/graph", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handleGraph(w, req)

	var resp GraphResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "invalid" {
		t.Errorf("expected status invalid, got %q", resp.Status)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected at least one error for an unknown node type")
	}
}

func TestServer_HandleRun_NoGraphSubmitted(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	w := httptest.NewRecorder()
	s.handleRun(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestServer_HandleRun_StartsAndCompletes(t *testing.T) {
	s := newTestServer(t)

	graphBody := `{
		"instances": [
			{"id": "a", "type": "const_int", "defaults": {"value": 3}},
			{"id": "out", "type": "terminal_output"}
		],
		"edges": [
			{"source": "a", "sourceHandle": "out", "target": "out", "targetHandle": "value"}
		]
	}`
	gw := httptest.NewRecorder()
	s.handleGraph(gw, httptest.NewRequest(http.MethodPost, "/graph", bytes.NewBufferString(graphBody)))
	if gw.Code != http.StatusOK {
		t.Fatalf("graph submission failed: %s", gw.Body.String())
	}

	rw := httptest.NewRecorder()
	s.handleRun(rw, httptest.NewRequest(http.MethodPost, "/run", nil))
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var resp RunResponse
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "started" {
		t.Errorf("expected status started, got %q", resp.Status)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		done := s.exec == nil
		s.mu.Unlock()
		if done {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("run did not complete within timeout")
}

func TestServer_HandleRun_RejectsConcurrentRun(t *testing.T) {
	s := newTestServer(t)

	graphBody := `{
		"instances": [{"id": "a", "type": "const_int", "defaults": {"value": 1}}, {"id": "out", "type": "terminal_output"}],
		"edges": [{"source": "a", "sourceHandle": "out", "target": "out", "targetHandle": "value"}]
	}`
	s.handleGraph(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graph", bytes.NewBufferString(graphBody)))

	s.mu.Lock()
	s.exec = nil
	s.mu.Unlock()

	w1 := httptest.NewRecorder()
	s.handleRun(w1, httptest.NewRequest(http.MethodPost, "/run", nil))
	if w1.Code != http.StatusOK {
		t.Fatalf("first run should start, got %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	s.handleRun(w2, httptest.NewRequest(http.MethodPost, "/run", nil))
	if w2.Code != http.StatusConflict {
		t.Errorf("expected 409 for a second concurrent run, got %d", w2.Code)
	}
}

func TestServer_HandleExamples(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleExamples(w, httptest.NewRequest(http.MethodGet, "/examples", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out []ExampleGraph
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 built-in examples, got %d", len(out))
	}
}

func TestServer_HandleExampleByKey_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleExampleByKey(w, httptest.NewRequest(http.MethodGet, "/examples/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestServer_HandleClearAndReloadNodes(t *testing.T) {
	s := newTestServer(t)

	before := len(s.registry.ListRegisteredTypes())

	w := httptest.NewRecorder()
	s.handleClearCustomNodes(w, httptest.NewRequest(http.MethodPost, "/clear-custom-nodes", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	s.handleReloadNodes(w2, httptest.NewRequest(http.MethodPost, "/reload-nodes", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}

	var resp ReloadNodesResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != before {
		t.Errorf("expected reload count to match the builtin catalog size %d, got %d", before, resp.Count)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleNodes(w, httptest.NewRequest(http.MethodPost, "/nodes", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
