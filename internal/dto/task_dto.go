package dto

import (
	"time"

	"studytrack-be/internal/entity"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title             string     `json:"title" validate:"required,max=200"`
	Description       string     `json:"description,omitempty"`
	Subject           string     `json:"subject,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Priority          string     `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Urgent"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty" validate:"omitempty,min=1"`
	Tags              []string   `json:"tags,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

type UpdateTaskRequest struct {
	Title             *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description       *string    `json:"description,omitempty"`
	Subject           *string    `json:"subject,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Priority          *string    `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High Urgent"`
	Status            *string    `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed overdue cancelled"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty" validate:"omitempty,min=1"`
	Tags              []string   `json:"tags,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

type TaskResponse struct {
	Id                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Subject           string     `json:"subject,omitempty"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	EstimatedDuration *int       `json:"estimated_duration,omitempty"`
	Tags              []string   `json:"tags"`
	Notes             string     `json:"notes,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

func TaskToResponse(t *entity.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		Id:                t.Id,
		Title:             t.Title,
		Description:       t.Description,
		Subject:           t.Subject,
		DueDate:           t.DueDate,
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		EstimatedDuration: t.EstimatedDuration,
		Tags:              tags,
		Notes:             t.Notes,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func TasksToResponses(tasks []*entity.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = TaskToResponse(t)
	}
	return responses
}
