package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TASK_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by every concrete event.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes. These match the notification type registry seeded by the
// seed command.
const (
	TypeTaskCreated    = "TASK_CREATED"
	TypeTaskCompleted  = "TASK_COMPLETED"
	TypeSubjectCreated = "SUBJECT_CREATED"
)

func NewTaskCreated(userId, taskId uuid.UUID, title string) Event {
	return BaseEvent{
		Type: TypeTaskCreated,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"entity_type": "task",
			"entity_id":   taskId.String(),
			"title":       title,
		},
		OccurredAt: time.Now(),
	}
}

func NewTaskCompleted(userId, taskId uuid.UUID, title string) Event {
	return BaseEvent{
		Type: TypeTaskCompleted,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"entity_type": "task",
			"entity_id":   taskId.String(),
			"title":       title,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubjectCreated(userId, subjectId uuid.UUID, name string) Event {
	return BaseEvent{
		Type: TypeSubjectCreated,
		Data: map[string]interface{}{
			"user_id":     userId.String(),
			"entity_type": "subject",
			"entity_id":   subjectId.String(),
			"title":       name,
		},
		OccurredAt: time.Now(),
	}
}
