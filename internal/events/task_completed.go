package events

import "time"

const TaskLifecycleTopic = "taskok.task.lifecycle.v1"

// TaskCompletedEvent is emitted through the outbox when a task transitions
// into the completed state.
type TaskCompletedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	TaskID     string    `json:"task_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
