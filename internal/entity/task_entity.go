package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string
type TaskStatus string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"

	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue, TaskStatusCancelled:
		return true
	}
	return false
}

type Task struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	Title             string
	Description       string
	Subject           string
	DueDate           *time.Time
	Priority          TaskPriority
	Status            TaskStatus
	EstimatedDuration *int // minutes
	Tags              []string
	Notes             string
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}
