package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title     string         `gorm:"type:text;not null"`
	Subject   string         `gorm:"type:varchar(120)"`
	Location  string         `gorm:"type:varchar(200)"`
	StartsAt  time.Time      `gorm:"not null;index"`
	EndsAt    time.Time      `gorm:"not null"`
	Notes     string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Event) TableName() string {
	return "events"
}
