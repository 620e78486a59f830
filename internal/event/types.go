package event

import (
	"time"

	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "screen.created", "stage.stopped")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// ScreenCreatedEvent is emitted each time a screen object is constructed,
// both on a fresh launch and on every recreation after a configuration
// change. It is published before the screen's Create callback runs, so a
// subscriber can attach observers to the screen before it does any work.
type ScreenCreatedEvent struct {
	baseEvent
	ScreenID string // Stable identity of the stack entry, survives recreation
	Kind     string // Registered screen kind
	Screen   any    // The freshly constructed screen object

	// RequestCode is the correlation tag the launch was started with.
	// HasRequestCode is false for direct launches outside the registry.
	RequestCode    request.Code
	HasRequestCode bool
}

// NewScreenCreatedEvent creates a ScreenCreatedEvent.
func NewScreenCreatedEvent(screenID, kind string, screen any, code request.Code, hasCode bool) ScreenCreatedEvent {
	return ScreenCreatedEvent{
		baseEvent:      newBaseEvent("screen.created"),
		ScreenID:       screenID,
		Kind:           kind,
		Screen:         screen,
		RequestCode:    code,
		HasRequestCode: hasCode,
	}
}

// ScreenDestroyedEvent is emitted after a screen object's Destroy callback
// has run. The stack entry may live on (recreation) or be gone (finish).
type ScreenDestroyedEvent struct {
	baseEvent
	ScreenID   string
	Kind       string
	Recreating bool // True when the entry will immediately be rebuilt
}

// NewScreenDestroyedEvent creates a ScreenDestroyedEvent.
func NewScreenDestroyedEvent(screenID, kind string, recreating bool) ScreenDestroyedEvent {
	return ScreenDestroyedEvent{
		baseEvent:  newBaseEvent("screen.destroyed"),
		ScreenID:   screenID,
		Kind:       kind,
		Recreating: recreating,
	}
}

// ScreenFinishedEvent is emitted when a screen finishes and reports a result.
type ScreenFinishedEvent struct {
	baseEvent
	ScreenID string
	Kind     string
	Status   request.Status
}

// NewScreenFinishedEvent creates a ScreenFinishedEvent.
func NewScreenFinishedEvent(screenID, kind string, status request.Status) ScreenFinishedEvent {
	return ScreenFinishedEvent{
		baseEvent: newBaseEvent("screen.finished"),
		ScreenID:  screenID,
		Kind:      kind,
		Status:    status,
	}
}

// StageStoppedEvent is emitted when the stage run loop exits.
type StageStoppedEvent struct {
	baseEvent
}

// NewStageStoppedEvent creates a StageStoppedEvent.
func NewStageStoppedEvent() StageStoppedEvent {
	return StageStoppedEvent{baseEvent: newBaseEvent("stage.stopped")}
}
