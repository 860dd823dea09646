package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Task struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title             string         `gorm:"type:text;not null"`
	Description       string         `gorm:"type:text"`
	Subject           string         `gorm:"type:varchar(120);index"`
	DueDate           *time.Time     `gorm:"index"`
	Priority          string         `gorm:"type:varchar(10);not null;default:'Medium'"`
	Status            string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	EstimatedDuration *int           // minutes
	Tags              datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Notes             string         `gorm:"type:text"`
	CompletedAt       *time.Time
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}
