package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/flowmesh/dataflow/pkg/graph"
	"github.com/flowmesh/dataflow/pkg/logging"
	"github.com/flowmesh/dataflow/pkg/observer"
	"github.com/flowmesh/dataflow/pkg/types"
)

type queueKey struct {
	node  string
	input string
}

// Executor is the dataflow scheduler bound to one graph and one run.
// All of inputQueues, running, and scheduled are mutated only while mu
// is held — spec.md §9 "Scheduler single-writer discipline" — while
// handler invocations themselves run with mu released.
type Executor struct {
	g         *graph.Graph
	cfg       Config
	observers *observer.Manager
	runID     string
	logger    *logging.Logger

	mu          sync.Mutex
	inputQueues map[queueKey][]types.Value
	running     map[string]int
	scheduled   map[string]bool
	firingCount int
	schedErr    error

	// stopped and cancelFunc are set once per Run and read by Stop
	// without taking mu: observer.Observer.OnEvent runs synchronously
	// while mu is held (routeItem notifies mid-critical-section), so a
	// Stop call made from inside an observer — the natural way to halt
	// an unbounded cycle after N emissions (spec.md §8 scenario 5) —
	// must not need mu itself or it would deadlock against its own
	// caller.
	stopped    atomic.Bool
	cancelFunc atomic.Pointer[context.CancelFunc]

	ctx    context.Context
	cancel context.CancelFunc
	errg   *errgroup.Group
}

// New returns an Executor for g. mgr may be nil, meaning no observers.
func New(g *graph.Graph, cfg Config, mgr *observer.Manager, runID string) *Executor {
	if mgr == nil {
		mgr = observer.NewManager()
	}
	if cfg.MaxConcurrencyPerNode <= 0 {
		cfg.MaxConcurrencyPerNode = 1
	}
	return &Executor{
		g:         g,
		cfg:       cfg,
		observers: mgr,
		runID:     runID,
	}
}

// SetLogger attaches a logger that runFiring uses to record node lifecycle
// events alongside the observer bus. Nil-safe: a nil logger (the default)
// disables this logging path entirely.
func (e *Executor) SetLogger(l *logging.Logger) *Executor {
	e.logger = l
	return e
}

func (e *Executor) notify(ev observer.Event) {
	ev.RunID = e.runID
	e.observers.Notify(ev)
}

// Run executes spec.md §4.2.5's lifecycle: initialize queues, inject
// inits, apply entry bindings, announce triggers, run the initial
// scheduling pass, then either wait for quiescence (no triggers) or
// block until Stop is called (triggers present). It returns nil on
// run_complete, or the scheduler error that produced run_error.
func (e *Executor) Run(ctx context.Context, entryBindings map[graph.EntryBinding]types.Value) error {
	var cancel context.CancelFunc
	if e.cfg.RunTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.cfg.RunTimeout)
		defer cancel()
	}

	if e.logger != nil {
		ctx = e.logger.WithRunID(e.runID).WithContext(ctx)
		e.logger.WithRunID(e.runID).Info("run started")
	}

	e.mu.Lock()
	// Handlers fire under ctx itself; Stop and failLocked cancel only
	// runCtx, which wakes this Run without cancelling in-flight firings.
	var runCtx context.Context
	runCtx, e.cancel = context.WithCancel(ctx)
	e.ctx = ctx
	e.cancelFunc.Store(&e.cancel)
	defer e.cancelFunc.Store(nil)
	e.errg = &errgroup.Group{}
	e.inputQueues = make(map[queueKey][]types.Value)
	e.running = make(map[string]int)
	e.scheduled = make(map[string]bool)
	e.stopped.Store(false)
	e.firingCount = 0
	e.schedErr = nil
	defer e.cancel()

	for _, inst := range e.g.Nodes() {
		for name, def := range inst.Spec.Inputs {
			if def.Init != nil {
				e.inputQueues[queueKey{inst.ID, name}] = append(e.inputQueues[queueKey{inst.ID, name}], *def.Init)
			}
		}
	}
	if entryBindings == nil {
		entryBindings = map[graph.EntryBinding]types.Value{}
	}
	for binding, val := range entryBindings {
		key := queueKey{binding.Node, binding.Input}
		e.inputQueues[key] = append(e.inputQueues[key], val)
	}
	e.mu.Unlock()

	e.announceTriggers()

	hasTriggers := false
	for _, inst := range e.g.Nodes() {
		if inst.Kind == types.KindTrigger {
			hasTriggers = true
			break
		}
	}

	e.schedule()

	if hasTriggers {
		<-runCtx.Done()
		e.stopped.Store(true)
	}

	waitErr := e.errg.Wait()

	e.mu.Lock()
	finalErr := e.schedErr
	if finalErr == nil {
		finalErr = waitErr
	}
	e.mu.Unlock()

	if finalErr != nil {
		e.notify(observer.Event{Type: observer.EventRunError, Err: finalErr})
		if e.logger != nil {
			e.logger.WithRunID(e.runID).WithError(finalErr).Error("run failed")
		}
		return finalErr
	}
	e.notify(observer.Event{Type: observer.EventRunComplete})
	if e.logger != nil {
		e.logger.WithRunID(e.runID).Info("run complete")
	}
	return nil
}

// Stop requests a clean shutdown: no further firings are scheduled, but
// in-flight firings complete naturally before Run returns (spec.md
// §4.2.5 step 6, §5 "Running firings are not forcibly cancelled"). Safe
// to call from an observer's OnEvent, including while a firing it is
// reacting to is still routing output — it takes no lock.
func (e *Executor) Stop() error {
	cancel := e.cancelFunc.Load()
	if cancel == nil {
		return ErrNotRunning
	}
	e.stopped.Store(true)
	(*cancel)()
	return nil
}

// announceTriggers emits one availability event per trigger-kind node,
// per spec.md §4.2.5 step 4. Which of the three availability events
// (trigger_available, ui_trigger_available, interface_available)
// fires is not specified in exhaustive detail by spec.md — this
// implementation treats a non-empty NodeSpec.InterfaceType as the
// legacy chat interface, a trigger node categorized "ui_trigger" as the
// UI-component case, and everything else as the plain trigger_available
// case. Recorded as an implementation decision in DESIGN.md.
func (e *Executor) announceTriggers() {
	for _, inst := range e.g.Nodes() {
		if inst.Kind != types.KindTrigger {
			continue
		}
		switch {
		case inst.Spec.InterfaceType != "":
			inputs := inst.Spec.OrderedInputs()
			outputs := make([]string, 0, len(inst.Spec.Outputs))
			for name := range inst.Spec.Outputs {
				outputs = append(outputs, name)
			}
			e.notify(observer.Event{
				Type:          observer.EventInterfaceAvail,
				NodeID:        inst.ID,
				NodeType:      inst.Spec.NodeType,
				ChatID:        inst.ID,
				InterfaceType: inst.Spec.InterfaceType,
				Participants:  inst.Spec.Participants,
				Inputs:        inputs,
				Outputs:       outputs,
			})
		case inst.Spec.Category == "ui_trigger":
			e.notify(observer.Event{
				Type:     observer.EventUITriggerAvail,
				NodeID:   inst.ID,
				NodeType: inst.Spec.NodeType,
			})
		default:
			inputName, typeTag := "value", "any"
			if order := inst.Spec.OrderedInputs(); len(order) > 0 {
				inputName = order[0]
				typeTag = inst.Spec.Inputs[inputName].Type
			} else if len(inst.Spec.Outputs) > 0 {
				for _, out := range inst.Spec.Outputs {
					typeTag = out.Type
					break
				}
			}
			e.notify(observer.Event{
				Type:     observer.EventTriggerAvailable,
				NodeID:   inst.ID,
				NodeType: inst.Spec.NodeType,
				Input:    inputName,
				Branch:   typeTag,
			})
		}
	}
}

// FireTrigger dispatches value into the named trigger node as if it had
// produced ("out", value) itself (spec.md §4.2.1). It is safe to call
// concurrently with an active Run and from multiple goroutines.
func (e *Executor) FireTrigger(name string, value types.Value) error {
	if value.IsNil() {
		return ErrNilTriggerValue
	}
	e.mu.Lock()
	if e.ctx == nil {
		e.mu.Unlock()
		return ErrNotRunning
	}
	if e.stopped.Load() {
		e.mu.Unlock()
		return ErrNotRunning
	}
	inst, ok := e.g.GetNode(name)
	if !ok || inst.Kind != types.KindTrigger {
		e.mu.Unlock()
		return ErrUnknownTrigger
	}
	e.routeItem(inst.ID, types.Item{Branch: "out", Value: value}, inst.Kind)
	e.mu.Unlock()

	e.schedule()
	return nil
}

// routeItem performs spec.md §4.2.3 step 4's per-item handling: emit
// the kind-appropriate observer event, then append the value to every
// downstream (target_node, target_input) queue for this (node, branch).
// Callers must hold mu.
func (e *Executor) routeItem(nodeID string, item types.Item, kind types.NodeKind) {
	switch kind {
	case types.KindTerminalOutput:
		e.notify(observer.Event{Type: observer.EventTerminalOutput, NodeID: nodeID, Value: item.Value})
	case types.KindLogger:
		e.notify(observer.Event{Type: observer.EventLog, NodeID: nodeID, Value: item.Value})
	case types.KindUIComponent:
		e.notify(observer.Event{Type: observer.EventUIUpdate, NodeID: nodeID, Input: item.Branch, Value: item.Value})
	default:
		e.notify(observer.Event{Type: observer.EventNodeOutput, NodeID: nodeID, Branch: item.Branch, Value: item.Value})
	}

	for _, edge := range e.g.OutEdges(nodeID, item.Branch) {
		key := queueKey{edge.TargetNode, edge.TargetInput}
		e.inputQueues[key] = append(e.inputQueues[key], item.Value)
	}
}

// schedule is spec.md §4.2.4's scheduling function: scan every node for
// readiness and start a firing task for each, incrementing running and
// marking scheduled before handing the task to the errgroup — both
// inside the same critical section — so a concurrent schedule call can
// never double-schedule the same firing slot.
func (e *Executor) schedule() {
	if e.stopped.Load() {
		return
	}
	e.mu.Lock()
	var toRun []string
	for _, inst := range e.g.Nodes() {
		if inst.Kind == types.KindTrigger {
			continue
		}
		if e.running[inst.ID] >= e.cfg.MaxConcurrencyPerNode {
			continue
		}
		if e.scheduled[inst.ID] {
			continue
		}
		if !e.isReady(inst) {
			continue
		}
		if e.cfg.MaxFirings > 0 && e.firingCount >= e.cfg.MaxFirings {
			e.failLocked(fmt.Errorf("%w: limit %d", ErrMaxFiringsExceeded, e.cfg.MaxFirings))
			break
		}
		e.firingCount++
		e.running[inst.ID]++
		e.scheduled[inst.ID] = true
		toRun = append(toRun, inst.ID)
	}
	e.mu.Unlock()

	for _, nodeID := range toRun {
		id := nodeID
		e.errg.Go(func() error {
			e.runFiring(id)
			return nil
		})
	}
}

// isReady implements spec.md §4.2.2. Callers must hold mu.
func (e *Executor) isReady(inst graph.Instance) bool {
	hasAnyInbound := len(e.g.InEdges(inst.ID)) > 0

	for name, def := range inst.Spec.Inputs {
		key := queueKey{inst.ID, name}
		q := e.inputQueues[key]
		connected := e.inputConnected(inst.ID, name)
		if connected {
			if len(q) == 0 {
				return false
			}
		} else {
			if len(q) == 0 && def.Default == nil {
				return false
			}
		}
	}

	if !hasAnyInbound {
		for _, edge := range e.g.Edges() {
			if edge.SourceNode != inst.ID {
				continue
			}
			if len(e.inputQueues[queueKey{edge.TargetNode, edge.TargetInput}]) > 0 {
				return false
			}
		}
	}
	return true
}

func (e *Executor) inputConnected(nodeID, input string) bool {
	for _, edge := range e.g.InEdges(nodeID) {
		if edge.TargetInput == input {
			return true
		}
	}
	return false
}

// runFiring is spec.md §4.2.3's firing step for one node invocation.
func (e *Executor) runFiring(nodeID string) {
	inst, _ := e.g.GetNode(nodeID)

	e.mu.Lock()
	args := make(map[string]types.Value, len(inst.Spec.Inputs))
	for name, def := range inst.Spec.Inputs {
		key := queueKey{nodeID, name}
		q := e.inputQueues[key]
		if len(q) > 0 {
			args[name] = q[0]
			e.inputQueues[key] = q[1:]
		} else if def.Default != nil {
			args[name] = *def.Default
		} else {
			e.scheduled[nodeID] = false
			e.running[nodeID]--
			e.failLocked(fmt.Errorf("%w: node %q input %q", types.ErrMissingInput, nodeID, name))
			e.mu.Unlock()
			return
		}
	}
	e.scheduled[nodeID] = false
	e.mu.Unlock()

	e.notify(observer.Event{Type: observer.EventNodeStart, NodeID: nodeID, NodeType: inst.Spec.NodeType})

	var nodeLogger *logging.Logger
	if e.logger != nil {
		nodeLogger = logging.FromContext(e.ctx).WithNodeID(nodeID).WithNodeType(inst.Spec.NodeType)
		nodeLogger.Debug("node firing")
	}

	firingCtx := e.ctx
	if e.cfg.PerNodeTimeout > 0 {
		var nodeCancel context.CancelFunc
		firingCtx, nodeCancel = context.WithTimeout(firingCtx, e.cfg.PerNodeTimeout)
		defer nodeCancel()
	}

	var fireErr error
	seq, err := inst.Spec.Handler(firingCtx, args)
	if err != nil {
		fireErr = err
	} else {
		for {
			item, more, nextErr := seq.Next(firingCtx)
			if nextErr != nil {
				fireErr = nextErr
				break
			}
			if !more {
				break
			}
			e.mu.Lock()
			e.routeItem(nodeID, item, inst.Kind)
			e.mu.Unlock()
			e.schedule()
		}
	}

	if fireErr != nil {
		e.notify(observer.Event{Type: observer.EventNodeError, NodeID: nodeID, Err: fireErr})
		if nodeLogger != nil {
			nodeLogger.WithError(fireErr).Error("node firing failed")
		}
	}

	e.mu.Lock()
	e.running[nodeID]--
	e.mu.Unlock()

	e.notify(observer.Event{Type: observer.EventNodeDone, NodeID: nodeID})
	e.schedule()
}

// failLocked records a scheduler-level error and stops the run. Callers
// must hold mu.
func (e *Executor) failLocked(err error) {
	if e.schedErr == nil {
		e.schedErr = err
	}
	e.stopped.Store(true)
	if e.cancel != nil {
		e.cancel()
	}
}
