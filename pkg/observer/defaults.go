package observer

import (
	"fmt"
	"log"
	"os"
)

// NoOpObserver ignores every event — the default when no observer is
// configured.
type NoOpObserver struct{}

func (o *NoOpObserver) OnEvent(event Event) {}

// ConsoleObserver prints events via a Logger, grounded on the teacher's
// ConsoleObserver but re-dispatched over spec.md's event catalog instead
// of the teacher's workflow_start/node_success taxonomy.
type ConsoleObserver struct {
	logger Logger
}

func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{logger: NewDefaultLogger()}
}

func NewConsoleObserverWithLogger(logger Logger) *ConsoleObserver {
	return &ConsoleObserver{logger: logger}
}

func (o *ConsoleObserver) OnEvent(event Event) {
	fields := map[string]any{"type": event.Type, "run_id": event.RunID}
	if event.NodeID != "" {
		fields["node_id"] = event.NodeID
		fields["node_type"] = event.NodeType
	}
	if !event.Value.IsNil() {
		fields["value"] = event.Value.Unwrap()
	}
	msg := fmt.Sprintf("[%s]", event.Type)

	switch event.Type {
	case EventNodeError, EventRunError:
		if event.Err != nil {
			fields["error"] = event.Err.Error()
		}
		o.logger.Error(msg, fields)
	case EventNodeStart, EventNodeOutput, EventNodeDone:
		o.logger.Debug(msg, fields)
	case EventLog:
		o.logger.Info(msg, fields)
	default:
		o.logger.Info(msg, fields)
	}
}

// NoOpLogger ignores every log call.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, fields map[string]any) {}
func (l *NoOpLogger) Info(msg string, fields map[string]any)  {}
func (l *NoOpLogger) Warn(msg string, fields map[string]any)  {}
func (l *NoOpLogger) Error(msg string, fields map[string]any) {}

// DefaultLogger writes to stdout/stderr via the standard log package,
// exactly as the teacher's DefaultLogger does.
type DefaultLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
}

func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

func (l *DefaultLogger) Debug(msg string, fields map[string]any) {
	l.infoLogger.Printf("[DEBUG] %s %v", msg, fields)
}

func (l *DefaultLogger) Info(msg string, fields map[string]any) {
	l.infoLogger.Printf("%s %v", msg, fields)
}

func (l *DefaultLogger) Warn(msg string, fields map[string]any) {
	l.infoLogger.Printf("[WARN] %s %v", msg, fields)
}

func (l *DefaultLogger) Error(msg string, fields map[string]any) {
	l.errorLogger.Printf("%s %v", msg, fields)
}

// Manager fans an Event out to every registered Observer, in
// registration order, synchronously. This is a deliberate departure
// from the teacher's Manager.Notify, which dispatches to each observer
// in its own goroutine: spec.md §4.4 and §9 require sequential
// delivery ("observers are sequential in the fan-out loop; a slow
// observer stalls the run"), so a panicking or slow observer here
// affects the run exactly as the spec describes rather than being
// isolated by a goroutine boundary.
type Manager struct {
	observers []Observer
}

func NewManager() *Manager {
	return &Manager{}
}

func NewManagerWithObservers(observers ...Observer) *Manager {
	return &Manager{observers: observers}
}

func (m *Manager) Register(o Observer) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// Notify delivers event to every observer in registration order,
// synchronously, one at a time.
func (m *Manager) Notify(event Event) {
	for _, o := range m.observers {
		o.OnEvent(event)
	}
}

func (m *Manager) HasObservers() bool { return len(m.observers) > 0 }
func (m *Manager) Count() int         { return len(m.observers) }
