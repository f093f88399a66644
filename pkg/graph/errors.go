package graph

import "errors"

// Sentinel errors for graph operations.
var (
	ErrEmptyGraph   = errors.New("graph: empty graph")
	ErrNodeNotFound = errors.New("graph: node not found")
)
