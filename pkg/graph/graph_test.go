package graph

import (
	"testing"

	"github.com/flowmesh/dataflow/pkg/types"
)

func spec(inputs map[string]types.InputDef, outputs ...string) types.NodeSpec {
	outDefs := make(map[string]types.OutputDef, len(outputs))
	for _, o := range outputs {
		outDefs[o] = types.OutputDef{Type: "int"}
	}
	return types.NodeSpec{Inputs: inputs, Outputs: outDefs}
}

func TestValidate_UnknownEndpoints(t *testing.T) {
	g := New(
		[]Instance{{ID: "a", Spec: spec(nil, "out")}},
		[]types.EdgeSpec{{SourceNode: "a", SourceBranch: "out", TargetNode: "missing", TargetInput: "in"}},
	)
	errs := g.Validate(nil)
	if len(errs) == 0 {
		t.Fatal("expected an error for a missing target node")
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	a := types.NodeSpec{Outputs: map[string]types.OutputDef{"out": {Type: "int"}}}
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "string"}}}
	g := New(
		[]Instance{{ID: "a", Spec: a}, {ID: "b", Spec: b}},
		[]types.EdgeSpec{{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"}},
	)
	errs := g.Validate(nil)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one type-mismatch error, got %v", errs)
	}
}

func TestValidate_UncoveredInputIsError(t *testing.T) {
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int"}}}
	g := New([]Instance{{ID: "b", Spec: b}}, nil)
	errs := g.Validate(nil)
	if len(errs) != 1 {
		t.Fatalf("expected one uncovered-input error, got %v", errs)
	}
}

func TestValidate_TriggerInputsAreExemptFromCoverage(t *testing.T) {
	trig := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int"}}}
	g := New([]Instance{{ID: "t", Spec: trig, Kind: types.KindTrigger}}, nil)
	errs := g.Validate(nil)
	if len(errs) != 0 {
		t.Fatalf("expected no errors for a trigger's uncovered input, got %v", errs)
	}
}

func TestValidate_DefaultOrInitSatisfiesCoverage(t *testing.T) {
	initVal := types.Int(0)
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int", Init: &initVal}}}
	g := New([]Instance{{ID: "b", Spec: b}}, nil)
	if errs := g.Validate(nil); len(errs) != 0 {
		t.Fatalf("expected init to satisfy coverage, got %v", errs)
	}
}

func TestValidate_EntryBindingSatisfiesCoverage(t *testing.T) {
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int"}}}
	g := New([]Instance{{ID: "b", Spec: b}}, nil)
	bindings := map[EntryBinding]struct{}{{Node: "b", Input: "in"}: {}}
	if errs := g.Validate(bindings); len(errs) != 0 {
		t.Fatalf("expected entry binding to satisfy coverage, got %v", errs)
	}
}

func TestValidate_CycleWithoutStarterIsError(t *testing.T) {
	a := types.NodeSpec{
		Inputs:  map[string]types.InputDef{"in": {Type: "int"}},
		Outputs: map[string]types.OutputDef{"out": {Type: "int"}},
	}
	b := types.NodeSpec{
		Inputs:  map[string]types.InputDef{"in": {Type: "int"}},
		Outputs: map[string]types.OutputDef{"out": {Type: "int"}},
	}
	g := New(
		[]Instance{{ID: "a", Spec: a}, {ID: "b", Spec: b}},
		[]types.EdgeSpec{
			{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"},
			{SourceNode: "b", SourceBranch: "out", TargetNode: "a", TargetInput: "in"},
		},
	)
	errs := g.Validate(nil)
	found := false
	for _, e := range errs {
		if len(e) > 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one error for an unstartable cycle")
	}
}

func TestValidate_SelfLoopWithInitIsValid(t *testing.T) {
	initVal := types.Int(0)
	n := types.NodeSpec{
		Inputs:  map[string]types.InputDef{"value": {Type: "int", Init: &initVal}},
		Outputs: map[string]types.OutputDef{"value": {Type: "int"}},
	}
	g := New(
		[]Instance{{ID: "inc", Spec: n}},
		[]types.EdgeSpec{{SourceNode: "inc", SourceBranch: "value", TargetNode: "inc", TargetInput: "value"}},
	)
	if errs := g.Validate(nil); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_CycleWithInitIsValid(t *testing.T) {
	initVal := types.Int(1)
	a := types.NodeSpec{
		Inputs:  map[string]types.InputDef{"in": {Type: "int", Init: &initVal}},
		Outputs: map[string]types.OutputDef{"out": {Type: "int"}},
	}
	b := types.NodeSpec{
		Inputs:  map[string]types.InputDef{"in": {Type: "int"}},
		Outputs: map[string]types.OutputDef{"out": {Type: "int"}},
	}
	g := New(
		[]Instance{{ID: "a", Spec: a}, {ID: "b", Spec: b}},
		[]types.EdgeSpec{
			{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"},
			{SourceNode: "b", SourceBranch: "out", TargetNode: "a", TargetInput: "in"},
		},
	)
	if errs := g.Validate(nil); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_MultigraphAllowsParallelEdges(t *testing.T) {
	a := types.NodeSpec{Outputs: map[string]types.OutputDef{"out": {Type: "int"}}}
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int"}}}
	g := New(
		[]Instance{{ID: "a", Spec: a}, {ID: "b", Spec: b}},
		[]types.EdgeSpec{
			{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"},
			{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"},
		},
	)
	if errs := g.Validate(nil); len(errs) != 0 {
		t.Fatalf("expected parallel edges to be legal, got %v", errs)
	}
	if len(g.InEdges("b")) != 2 {
		t.Fatalf("expected 2 inbound edges to b, got %d", len(g.InEdges("b")))
	}
}

func TestValidate_RebuildIsDeterministic(t *testing.T) {
	a := types.NodeSpec{Outputs: map[string]types.OutputDef{"out": {Type: "int"}}}
	b := types.NodeSpec{Inputs: map[string]types.InputDef{"in": {Type: "int"}}}
	instances := []Instance{{ID: "a", Spec: a}, {ID: "b", Spec: b}}
	edges := []types.EdgeSpec{{SourceNode: "a", SourceBranch: "out", TargetNode: "b", TargetInput: "in"}}

	g1 := New(instances, edges)
	g2 := New(instances, edges)

	if len(g1.Validate(nil)) != len(g2.Validate(nil)) {
		t.Fatal("expected rebuilding from the same instance+edge lists to yield the same validator result")
	}
}
