package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowmesh/dataflow/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry
// data for a dataflow run's node_start/node_done/node_error/run_complete
// events (spec.md §6).
type TelemetryObserver struct {
	provider *Provider

	runSpan   trace.Span
	nodeSpans map[string]trace.Span

	runStartTime   time.Time
	nodeStartTimes map[string]time.Time
	nodesExecuted  int
}

// NewTelemetryObserver creates a new telemetry observer.
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:       provider,
		nodeSpans:      make(map[string]trace.Span),
		nodeStartTimes: make(map[string]time.Time),
	}
}

// OnEvent handles lifecycle events and records telemetry data.
func (o *TelemetryObserver) OnEvent(event observer.Event) {
	ctx := context.Background()
	switch event.Type {
	case observer.EventNodeStart:
		o.handleNodeStart(ctx, event)
	case observer.EventNodeDone:
		o.handleNodeEnd(ctx, event, true)
	case observer.EventNodeError:
		o.handleNodeEnd(ctx, event, false)
	case observer.EventRunComplete:
		o.handleRunEnd(ctx, event, true)
	case observer.EventRunError:
		o.handleRunEnd(ctx, event, false)
	}
}

func (o *TelemetryObserver) handleRunEnd(ctx context.Context, event observer.Event, success bool) {
	duration := time.Since(o.runStartTime)
	o.provider.RecordRunExecution(ctx, event.RunID, duration, success, o.nodesExecuted)

	if o.runSpan != nil {
		if event.Err != nil {
			o.runSpan.RecordError(event.Err)
			o.runSpan.SetStatus(codes.Error, event.Err.Error())
		} else {
			o.runSpan.SetStatus(codes.Ok, "run completed")
		}
		o.runSpan.End()
	}
}

func (o *TelemetryObserver) handleNodeStart(ctx context.Context, event observer.Event) {
	spanCtx := ctx
	if o.runSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.runSpan)
	}

	_, span := o.provider.Tracer().Start(spanCtx, "node.fire",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("node.type", event.NodeType),
			attribute.String("run.id", event.RunID),
		),
	)

	o.nodeSpans[event.NodeID] = span
	o.nodeStartTimes[event.NodeID] = time.Now()
	o.nodesExecuted++
}

func (o *TelemetryObserver) handleNodeEnd(ctx context.Context, event observer.Event, success bool) {
	var duration time.Duration
	if startTime, ok := o.nodeStartTimes[event.NodeID]; ok {
		duration = time.Since(startTime)
		delete(o.nodeStartTimes, event.NodeID)
	}

	o.provider.RecordNodeExecution(ctx, event.NodeID, event.NodeType, duration, success)

	if span, ok := o.nodeSpans[event.NodeID]; ok {
		if event.Err != nil {
			span.RecordError(event.Err)
			span.SetStatus(codes.Error, event.Err.Error())
		} else {
			span.SetStatus(codes.Ok, "node fired")
		}
		span.End()
		delete(o.nodeSpans, event.NodeID)
	}
}
