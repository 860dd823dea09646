package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusArchived  SessionStatus = "archived"
)

// AcceptsMessages reports whether new turns may be appended.
// Completed and archived sessions are terminal.
func (s SessionStatus) AcceptsMessages() bool {
	return s == SessionStatusActive || s == ""
}

type ChatSession struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Title         string
	Status        SessionStatus
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
