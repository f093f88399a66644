package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/flowmesh/dataflow/pkg/graph"
	"github.com/flowmesh/dataflow/pkg/handler"
	"github.com/flowmesh/dataflow/pkg/observer"
	"github.com/flowmesh/dataflow/pkg/types"
)

// collector gathers terminal_output and log events in arrival order, for
// assertions that don't care about the rest of the event catalog.
type collector struct {
	mu     sync.Mutex
	values []types.Value
	events []observer.EventType
}

func (c *collector) OnEvent(ev observer.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev.Type)
	if ev.Type == observer.EventTerminalOutput || ev.Type == observer.EventLog {
		c.values = append(c.values, ev.Value)
	}
}

func intInput(typeTag string) types.InputDef { return types.InputDef{Type: typeTag} }

// constSource is a one-shot source: its single input is seeded once via
// Init and carries no default, so after its first (and only) firing
// drains that seed, the ordinary per-input readiness check keeps it
// from ever firing again.
func constSource(name string, out types.Value) graph.Instance {
	spec := types.NodeSpec{
		Name:       name,
		NodeType:   "const",
		InputOrder: []string{"seed"},
		Inputs:     map[string]types.InputDef{"seed": {Type: "int", Init: &out}},
		Outputs:    map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "out", Value: args["seed"]}}, nil
		}),
	}
	return graph.Instance{ID: name, Spec: spec}
}

func terminalSink(name string) graph.Instance {
	spec := types.NodeSpec{
		Name:       name,
		NodeType:   "terminal_output",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("any")},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "value", Value: args["value"]}}, nil
		}),
	}
	return graph.Instance{ID: name, Spec: spec, Kind: types.KindTerminalOutput}
}

func runExecutor(t *testing.T, g *graph.Graph, bindings map[graph.EntryBinding]types.Value) *collector {
	t.Helper()
	col := &collector{}
	mgr := observer.NewManager()
	mgr.Register(col)
	exec := New(g, DefaultConfig(), mgr, "test-run")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := exec.Run(ctx, bindings); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return col
}

// TestExecutor_EvenOddRouting is spec.md §8 scenario "branch routing":
// is_even routes its single int input to one of two branches, and only
// the matching terminal sees a value.
func TestExecutor_EvenOddRouting(t *testing.T) {
	isEven := types.NodeSpec{
		Name:       "is_even",
		NodeType:   "is_even",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("int")},
		Outputs: map[string]types.OutputDef{
			"even": {Type: "int"},
			"odd":  {Type: "int"},
		},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			n, _ := args["value"].Int()
			if n%2 == 0 {
				return []types.Item{{Branch: "even", Value: args["value"]}}, nil
			}
			return []types.Item{{Branch: "odd", Value: args["value"]}}, nil
		}),
	}

	g := graph.New(
		[]graph.Instance{
			{ID: "is_even", Spec: isEven},
			terminalSink("even_sink"),
			terminalSink("odd_sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "is_even", SourceBranch: "even", TargetNode: "even_sink", TargetInput: "value"},
			{SourceNode: "is_even", SourceBranch: "odd", TargetNode: "odd_sink", TargetInput: "value"},
		},
	)

	col := runExecutor(t, g, map[graph.EntryBinding]types.Value{
		{Node: "is_even", Input: "value"}: types.Int(4),
	})

	if len(col.values) != 1 {
		t.Fatalf("expected exactly one terminal_output event, got %d (%v)", len(col.values), col.values)
	}
	if n, _ := col.values[0].Int(); n != 4 {
		t.Fatalf("expected routed value 4, got %v", col.values[0])
	}
}

// TestExecutor_FanInSum is spec.md §8 scenario "fan-in sum": two
// producers feed one two-input node; the k-th value on each input pairs
// positionally to form the k-th firing.
func TestExecutor_FanInSum(t *testing.T) {
	sum := types.NodeSpec{
		Name:       "sum",
		NodeType:   "sum",
		InputOrder: []string{"a", "b"},
		Inputs: map[string]types.InputDef{
			"a": intInput("int"),
			"b": intInput("int"),
		},
		Outputs: map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			a, _ := args["a"].Int()
			b, _ := args["b"].Int()
			return []types.Item{{Branch: "out", Value: types.Int(a + b)}}, nil
		}),
	}

	g := graph.New(
		[]graph.Instance{
			constSource("a_src", types.Int(10)),
			constSource("b_src", types.Int(32)),
			{ID: "sum", Spec: sum},
			terminalSink("sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "a_src", SourceBranch: "out", TargetNode: "sum", TargetInput: "a"},
			{SourceNode: "b_src", SourceBranch: "out", TargetNode: "sum", TargetInput: "b"},
			{SourceNode: "sum", SourceBranch: "out", TargetNode: "sink", TargetInput: "value"},
		},
	)

	col := runExecutor(t, g, nil)

	if len(col.values) != 1 {
		t.Fatalf("expected exactly one firing of sum, got %d values: %v", len(col.values), col.values)
	}
	if n, _ := col.values[0].Int(); n != 42 {
		t.Fatalf("expected 10+32=42, got %v", col.values[0])
	}
}

// TestExecutor_CycleWithInit is spec.md §8 scenario 5: a self-loop node
// ("inc") is only schedulable because its looped input carries an Init
// value, seeding the first firing. The node itself never caps its own
// output — per the scenario, the sequence 1,2,3,4,5 is produced by an
// unbounded cycle and halted externally, by a fire-count observer
// calling Executor.Stop after the 5th emission, not by the handler
// self-limiting.
func TestExecutor_CycleWithInit(t *testing.T) {
	zero := types.Int(0)
	inc := types.NodeSpec{
		Name:       "inc",
		NodeType:   "inc",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": {Type: "int", Init: &zero}},
		Outputs:    map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			n, _ := args["value"].Int()
			return []types.Item{{Branch: "out", Value: types.Int(n + 1)}}, nil
		}),
	}

	g := graph.New(
		[]graph.Instance{{ID: "inc", Spec: inc}},
		[]types.EdgeSpec{
			{SourceNode: "inc", SourceBranch: "out", TargetNode: "inc", TargetInput: "value"},
		},
	)

	var mu sync.Mutex
	var seen []int64
	stopper := &fireCountStopper{
		limit: 5,
		onEmit: func(n int64) {
			mu.Lock()
			seen = append(seen, n)
			mu.Unlock()
		},
	}
	mgr := observer.NewManager()
	mgr.Register(stopper)

	exec := New(g, DefaultConfig(), mgr, "cycle-run")
	stopper.exec = exec

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := exec.Run(ctx, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 5 {
		t.Fatalf("expected exactly 5 emissions before Stop took effect, got %d: %v", len(seen), seen)
	}
	for i, n := range seen {
		if n != int64(i+1) {
			t.Fatalf("expected sequence 1,2,3,4,5, got %v", seen)
		}
	}
}

// fireCountStopper is an observer.Observer that calls Executor.Stop once
// it has observed a configured number of emissions on the self-loop,
// exercising the Stop contract (spec.md §4.2.1) rather than relying on
// the handler to cap itself. Stop takes effect before the next schedule
// pass runs, so the cutoff is exact.
type fireCountStopper struct {
	limit  int
	count  int
	exec   *Executor
	onEmit func(int64)
}

func (s *fireCountStopper) OnEvent(ev observer.Event) {
	if ev.Type != observer.EventNodeOutput {
		return
	}
	n, _ := ev.Value.Int()
	s.count++
	if s.onEmit != nil {
		s.onEmit(n)
	}
	if s.count >= s.limit {
		_ = s.exec.Stop()
	}
}

// TestExecutor_HandlerErrorIsolation is spec.md §8 scenario 6: a
// two-branch graph where the left branch's node always raises. The
// node_error on the left must not prevent the right branch's
// terminal_output from being observed.
func TestExecutor_HandlerErrorIsolation(t *testing.T) {
	seed := types.Int(1)
	flaky := types.NodeSpec{
		Name:       "flaky",
		NodeType:   "flaky",
		InputOrder: []string{"seed"},
		Inputs:     map[string]types.InputDef{"seed": {Type: "int", Init: &seed}},
		Outputs:    map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return nil, fmt.Errorf("boom")
		}),
	}
	working := constSource("working", types.Int(7))

	g := graph.New(
		[]graph.Instance{
			{ID: "flaky", Spec: flaky},
			working,
			terminalSink("sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "working", SourceBranch: "out", TargetNode: "sink", TargetInput: "value"},
		},
	)

	col := runExecutor(t, g, nil)

	sawError, sawComplete := false, false
	for _, ev := range col.events {
		if ev == observer.EventNodeError {
			sawError = true
		}
		if ev == observer.EventRunComplete {
			sawComplete = true
		}
	}
	if !sawError {
		t.Fatal("expected a node_error event from the failing left branch")
	}
	if !sawComplete {
		t.Fatal("expected run_complete despite the handler error, per fail-safety isolation")
	}
	if len(col.values) != 1 {
		t.Fatalf("expected the working sibling branch's terminal_output to still be observed, got %d values: %v", len(col.values), col.values)
	}
	if n, _ := col.values[0].Int(); n != 7 {
		t.Fatalf("expected the working branch's value 7, got %v", col.values[0])
	}
}

// TestExecutor_MathChainWithLoggerBranch is spec.md §8 scenario 2: a
// straight chain to terminal_output with a logger side branch off an
// intermediate node. Firing 3 must yield terminal_output "18" (3²·2)
// and a log event carrying the intermediate "9" (3²).
func TestExecutor_MathChainWithLoggerBranch(t *testing.T) {
	square := types.NodeSpec{
		Name:       "square",
		NodeType:   "square",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("int")},
		Outputs:    map[string]types.OutputDef{"result": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(v * v)}}, nil
		}),
	}
	double := types.NodeSpec{
		Name:       "double",
		NodeType:   "double",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("int")},
		Outputs:    map[string]types.OutputDef{"result": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			return []types.Item{{Branch: "result", Value: types.Int(v * 2)}}, nil
		}),
	}
	logger := types.NodeSpec{
		Name:       "logger",
		NodeType:   "logger",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("any")},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			return []types.Item{{Branch: "value", Value: args["value"]}}, nil
		}),
	}

	g := graph.New(
		[]graph.Instance{
			{ID: "square", Spec: square},
			{ID: "double", Spec: double},
			{ID: "logger", Spec: logger, Kind: types.KindLogger},
			terminalSink("sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "square", SourceBranch: "result", TargetNode: "double", TargetInput: "value"},
			{SourceNode: "square", SourceBranch: "result", TargetNode: "logger", TargetInput: "value"},
			{SourceNode: "double", SourceBranch: "result", TargetNode: "sink", TargetInput: "value"},
		},
	)

	col := runExecutor(t, g, map[graph.EntryBinding]types.Value{
		{Node: "square", Input: "value"}: types.Int(3),
	})

	var terminalSeen, logSeen *int64
	valueIdx := 0
	for _, ev := range col.events {
		if ev != observer.EventTerminalOutput && ev != observer.EventLog {
			continue
		}
		n, _ := col.values[valueIdx].Int()
		valueIdx++
		if ev == observer.EventTerminalOutput {
			terminalSeen = &n
		} else {
			logSeen = &n
		}
	}
	if terminalSeen == nil || *terminalSeen != 18 {
		t.Fatalf("expected terminal_output 18, got %v", terminalSeen)
	}
	if logSeen == nil || *logSeen != 9 {
		t.Fatalf("expected log event carrying 9, got %v", logSeen)
	}
}

// TestExecutor_ThreeWayBranchRouting is spec.md §8 scenario 4: a single
// node routes to one of three branches depending on its input's sign,
// and every fired value reaches terminal_output exactly once.
func TestExecutor_ThreeWayBranchRouting(t *testing.T) {
	isPositive := types.NodeSpec{
		Name:       "is_positive",
		NodeType:   "is_positive",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("int")},
		Outputs: map[string]types.OutputDef{
			"positive": {Type: "int"},
			"negative": {Type: "int"},
			"zero":     {Type: "int"},
		},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			v, _ := args["value"].Int()
			switch {
			case v > 0:
				return []types.Item{{Branch: "positive", Value: args["value"]}}, nil
			case v < 0:
				return []types.Item{{Branch: "negative", Value: args["value"]}}, nil
			default:
				return []types.Item{{Branch: "zero", Value: args["value"]}}, nil
			}
		}),
	}

	g := graph.New(
		[]graph.Instance{
			{ID: "is_positive", Spec: isPositive},
			terminalSink("sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "is_positive", SourceBranch: "positive", TargetNode: "sink", TargetInput: "value"},
			{SourceNode: "is_positive", SourceBranch: "negative", TargetNode: "sink", TargetInput: "value"},
			{SourceNode: "is_positive", SourceBranch: "zero", TargetNode: "sink", TargetInput: "value"},
		},
	)

	for _, in := range []int64{5, -3, 0} {
		col := runExecutor(t, g, map[graph.EntryBinding]types.Value{
			{Node: "is_positive", Input: "value"}: types.Int(in),
		})
		if len(col.values) != 1 {
			t.Fatalf("input %d: expected exactly one terminal_output, got %d", in, len(col.values))
		}
		if n, _ := col.values[0].Int(); n != in {
			t.Fatalf("input %d: expected terminal_output %d, got %v", in, in, col.values[0])
		}
	}
}

// TestExecutor_FireTrigger exercises the trigger-dispatch path: a graph
// with a trigger-kind node never fires on its own and only produces
// output once FireTrigger is called.
func TestExecutor_FireTrigger(t *testing.T) {
	trigger := types.NodeSpec{
		Name:     "start",
		NodeType: "trigger",
		Outputs:  map[string]types.OutputDef{"out": {Type: "int"}},
	}
	double := types.NodeSpec{
		Name:       "double",
		NodeType:   "double",
		InputOrder: []string{"value"},
		Inputs:     map[string]types.InputDef{"value": intInput("int")},
		Outputs:    map[string]types.OutputDef{"out": {Type: "int"}},
		Handler: handler.FromSync(func(args map[string]types.Value) ([]types.Item, error) {
			n, _ := args["value"].Int()
			return []types.Item{{Branch: "out", Value: types.Int(n * 2)}}, nil
		}),
	}

	g := graph.New(
		[]graph.Instance{
			{ID: "start", Spec: trigger, Kind: types.KindTrigger},
			{ID: "double", Spec: double},
			terminalSink("sink"),
		},
		[]types.EdgeSpec{
			{SourceNode: "start", SourceBranch: "out", TargetNode: "double", TargetInput: "value"},
			{SourceNode: "double", SourceBranch: "out", TargetNode: "sink", TargetInput: "value"},
		},
	)

	col := &collector{}
	mgr := observer.NewManager()
	mgr.Register(col)
	exec := New(g, DefaultConfig(), mgr, "trigger-run")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- exec.Run(ctx, nil) }()

	time.Sleep(20 * time.Millisecond)
	if err := exec.FireTrigger("start", types.Int(21)); err != nil {
		t.Fatalf("FireTrigger failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop/cancel")
	}

	if len(col.values) != 1 {
		t.Fatalf("expected one terminal_output from the triggered firing, got %d", len(col.values))
	}
	if n, _ := col.values[0].Int(); n != 42 {
		t.Fatalf("expected 21*2=42, got %v", col.values[0])
	}
}

// TestExecutor_NilTriggerValueRejected covers spec.md §9's Open
// Question resolution: FireTrigger must reject a nil value rather than
// silently filtering it.
func TestExecutor_NilTriggerValueRejected(t *testing.T) {
	trigger := types.NodeSpec{Name: "start", NodeType: "trigger", Outputs: map[string]types.OutputDef{"out": {Type: "int"}}}
	g := graph.New([]graph.Instance{{ID: "start", Spec: trigger, Kind: types.KindTrigger}}, nil)

	exec := New(g, DefaultConfig(), nil, "run")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- exec.Run(ctx, nil) }()
	time.Sleep(10 * time.Millisecond)

	if err := exec.FireTrigger("start", types.Value{}); err != ErrNilTriggerValue {
		t.Fatalf("expected ErrNilTriggerValue, got %v", err)
	}
	if err := exec.FireTrigger("missing", types.Int(1)); err != ErrUnknownTrigger {
		t.Fatalf("expected ErrUnknownTrigger, got %v", err)
	}

	cancel()
	<-done
}
