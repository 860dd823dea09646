package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageMetadata records the resolved intent of an assistant turn.
// Only intent and payload survive a turn; the raw model output does not.
type MessageMetadata struct {
	Intent  string                 `json:"intent"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Metadata      *MessageMetadata
	CreatedAt     time.Time
}
