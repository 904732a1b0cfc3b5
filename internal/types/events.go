package types

// EventType classifies progress events emitted while renaming
type EventType string

const (
	EventInfo    EventType = "info"
	EventSuccess EventType = "success"
	EventWarning EventType = "warning"
	EventError   EventType = "error"
)

// Event is a progress message for CLI and TUI consumers
type Event struct {
	Type    EventType
	Message string
}

// EventHandler receives events; it must not block for long
type EventHandler func(Event)

// OperationStatus is the state of one planned move
type OperationStatus string

const (
	StatusPending OperationStatus = "pending"
	StatusSuccess OperationStatus = "success"
	StatusSkipped OperationStatus = "skipped"
	StatusFailed  OperationStatus = "failed"
)
