package dto

import (
	"time"

	"studytrack-be/internal/entity"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Subject  string    `json:"subject,omitempty"`
	Location string    `json:"location,omitempty"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required"`
	Notes    string    `json:"notes,omitempty"`
}

type UpdateEventRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Subject  *string    `json:"subject,omitempty"`
	Location *string    `json:"location,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

type EventResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject,omitempty"`
	Location  string     `json:"location,omitempty"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    time.Time  `json:"ends_at"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func EventToResponse(e *entity.Event) EventResponse {
	return EventResponse{
		Id:        e.Id,
		Title:     e.Title,
		Subject:   e.Subject,
		Location:  e.Location,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func EventsToResponses(events []*entity.Event) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = EventToResponse(e)
	}
	return responses
}
