package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a timetable/calendar entry (lecture, exam, study block).
type Event struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Subject   string
	Location  string
	StartsAt  time.Time
	EndsAt    time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
