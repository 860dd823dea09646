package entity

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
