// Package observer multicasts dataflow lifecycle events to zero or more
// observers, per spec.md §4.4 and the event catalog in §6.
package observer

import (
	"time"

	"github.com/flowmesh/dataflow/pkg/types"
)

// EventType names one kind of lifecycle event, exactly the catalog of
// spec.md §6.
type EventType string

const (
	EventNodeStart         EventType = "node_start"
	EventNodeOutput        EventType = "node_output"
	EventNodeDone          EventType = "node_done"
	EventNodeError         EventType = "node_error"
	EventTerminalOutput    EventType = "terminal_output"
	EventLog               EventType = "log"
	EventUIUpdate          EventType = "ui_update"
	EventTriggerAvailable  EventType = "trigger_available"
	EventUITriggerAvail    EventType = "ui_trigger_available"
	EventInterfaceAvail    EventType = "interface_available"
	EventRunComplete       EventType = "run_complete"
	EventRunError          EventType = "run_error"
)

// Event is one lifecycle notification. Not every field is populated for
// every EventType — see the per-event field list in spec.md §6; unused
// fields are left at their zero value.
type Event struct {
	Type      EventType
	Timestamp time.Time
	RunID     string

	NodeID   string
	NodeType string

	Branch string
	Value  types.Value

	// Input names the (node, input) pair a ui_update event targets.
	Input string

	Err error

	// ChatID, InterfaceType, Participants, Inputs, Outputs are only set
	// on interface_available, the legacy chat-interface event.
	ChatID        string
	InterfaceType string
	Participants  []types.ParticipantDef
	Inputs        []string
	Outputs       []string
}

// Observer is a sink receiving lifecycle events from the engine.
type Observer interface {
	OnEvent(event Event)
}

// Logger is the structured-logging sink used by ConsoleObserver.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}
