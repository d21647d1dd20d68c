// Package events provides the event infrastructure for stage-completion
// emission. It defines the Envelope type wrapping stage events with
// consistent metadata and the EventSink interface for event delivery.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Stage event types emitted by the evaluation activities.
const (
	TypeValidationCompleted = "validation.completed"
	TypeScoringCompleted    = "scoring.completed"
)

// Envelope wraps stage events with consistent metadata. Events are an
// observability side channel: the results file, not the event stream, is
// the authoritative record of a submission's outcome.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing, e.g. "validation.completed".
	Type string `json:"type"`

	// Source names the component that emitted the event.
	Source string `json:"source"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// WorkflowID identifies the orchestrating workflow, when any.
	WorkflowID string `json:"workflow_id,omitempty"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id,omitempty"`

	// Payload carries the stage-specific event data as JSON.
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope builds an envelope with a fresh ID and timestamp.
func NewEnvelope(eventType, source string, payload json.RawMessage) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// EventSink delivers events to downstream consumers. Implementations must
// return quickly and tolerate duplicates; callers never fail their primary
// operation because a sink errored.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null EventSink for tests or when events are disabled.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil
}

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
