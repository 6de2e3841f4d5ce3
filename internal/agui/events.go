// Package agui implements AG-UI protocol SSE streaming of deck generation
// progress. A run follows the pipeline phases (plan, review, compose, render,
// export, verify); the stream mirrors each phase transition and state change
// so the frontend can render the deck as it takes shape.
package agui

import "time"

// EventType identifies an AG-UI event.
type EventType string

const (
	EventRunStarted    EventType = "RUN_STARTED"
	EventRunFinished   EventType = "RUN_FINISHED"
	EventRunError      EventType = "RUN_ERROR"
	EventStepStarted   EventType = "STEP_STARTED"
	EventStepFinished  EventType = "STEP_FINISHED"
	EventStateSnapshot EventType = "STATE_SNAPSHOT"
	EventStateDelta    EventType = "STATE_DELTA"
	EventCustom        EventType = "CUSTOM"
)

// Event is a single SSE event emitted to the client. WorkflowID ties the
// event to the presentation workflow being streamed.
type Event struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
	Data       any       `json:"data,omitempty"`
}

// newEvent stamps an event with the current time.
func newEvent(t EventType, workflowID string, data any) Event {
	return Event{Type: t, Timestamp: time.Now().UTC(), WorkflowID: workflowID, Data: data}
}

// StateSnapshotData carries the full deck state plus the UI schema built
// from it. Sent once when a client connects, so late joiners see outline,
// slides, and export results produced before they subscribed.
type StateSnapshotData struct {
	Phase    string `json:"phase"`
	State    any    `json:"state"`
	UISchema any    `json:"ui_schema"`
}

// StateDeltaData carries field-level deltas between polls: a new outline,
// freshly composed slides, the rendered deck, or export and verification
// results as they land.
type StateDeltaData struct {
	Phase    string  `json:"phase"`
	Patches  []Patch `json:"patches"`
	UISchema any     `json:"ui_schema"`
}

// Patch is an RFC 6902-style JSON Patch operation against the deck state.
type Patch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// StepData names the pipeline phase a STEP_* event refers to.
type StepData struct {
	Phase string `json:"phase"`
}

// ErrorData carries error info for RUN_ERROR events.
type ErrorData struct {
	Message string `json:"message"`
}
