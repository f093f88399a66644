package server

import "github.com/flowmesh/dataflow/pkg/types"

// NodeDescriptor is one row of GET /nodes (spec.md §6).
type NodeDescriptor struct {
	Name          string                 `json:"name"`
	Category      string                 `json:"category,omitempty"`
	Inputs        []string               `json:"inputs"`
	Outputs       []string               `json:"outputs"`
	Code          string                 `json:"code,omitempty"`
	InterfaceType string                 `json:"interface_type,omitempty"`
	Participants  []types.ParticipantDef `json:"participants,omitempty"`
}

// InstanceDTO is one entry of POST /graph's "instances" array.
// GlobalBindings maps an input name to a key in the request's
// GlobalVariables map, resolved once at graph-build time into that
// input's Init value (an interpretation of spec.md §6's sparse
// "globalBindings" field, recorded in DESIGN.md).
type InstanceDTO struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Defaults       map[string]any    `json:"defaults,omitempty"`
	GlobalBindings map[string]string `json:"globalBindings,omitempty"`
}

// EdgeDTO is one entry of POST /graph's "edges" array, using the
// source/sourceHandle/target/targetHandle naming of spec.md §6.
type EdgeDTO struct {
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// GraphRequest is the POST /graph request body.
type GraphRequest struct {
	Instances       []InstanceDTO  `json:"instances"`
	Edges           []EdgeDTO      `json:"edges"`
	GlobalVariables map[string]any `json:"globalVariables,omitempty"`
}

// GraphResponse is the POST /graph response body.
type GraphResponse struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

// RunRequest is the optional POST /run request body: entry bindings
// applied once at run start (spec.md §6, "Entry bindings passed to
// run()").
type RunRequest struct {
	EntryBindings map[string]map[string]any `json:"entryBindings,omitempty"`
}

// RunResponse is the POST /run response body.
type RunResponse struct {
	Status string `json:"status"`
}

// ExportResponse is the POST /export response body.
type ExportResponse struct {
	Code string `json:"code"`
}

// UploadNodesRequest is the POST /upload-nodes request body: one or more
// hot-load manifests, each the raw bytes of a single YAML node
// definition (pkg/registry.LoadBytes).
type UploadNodesRequest struct {
	Files [][]byte `json:"files"`
}

// UploadNodesResponse is the POST /upload-nodes response body.
type UploadNodesResponse struct {
	Status string   `json:"status"`
	Loaded []string `json:"loaded"`
}

// StatusResponse is a generic {status} response.
type StatusResponse struct {
	Status string `json:"status"`
}

// ReloadNodesResponse is the POST /reload-nodes response body.
type ReloadNodesResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ExampleGraph is one entry under GET /examples.
type ExampleGraph struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Graph       GraphRequest `json:"graph"`
}

// WSClientMessage is a client->server message on /ws/events (spec.md
// §6): either a trigger value or a legacy chat message.
type WSClientMessage struct {
	Type    string `json:"type"`
	NodeID  string `json:"node_id,omitempty"`
	Value   any    `json:"value,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// WSEvent is a server->client message on /ws/events: one observer.Event
// flattened to JSON.
type WSEvent struct {
	Type          string                 `json:"type"`
	NodeID        string                 `json:"node_id,omitempty"`
	NodeType      string                 `json:"node_type,omitempty"`
	Branch        string                 `json:"branch,omitempty"`
	Value         any                    `json:"value,omitempty"`
	Input         string                 `json:"input,omitempty"`
	Error         string                 `json:"error,omitempty"`
	ChatID        string                 `json:"chat_id,omitempty"`
	InterfaceType string                 `json:"interface_type,omitempty"`
	Participants  []types.ParticipantDef `json:"participants,omitempty"`
	Inputs        []string               `json:"inputs,omitempty"`
	Outputs       []string               `json:"outputs,omitempty"`
}
