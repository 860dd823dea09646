package mapper

import (
	"time"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/model"

	"gorm.io/gorm"
)

// ScheduleMapper covers the timetable side: subjects and events.
type ScheduleMapper struct{}

func NewScheduleMapper() *ScheduleMapper {
	return &ScheduleMapper{}
}

func (m *ScheduleMapper) SubjectToEntity(s *model.Subject) *entity.Subject {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Subject{
		Id:        s.Id,
		UserId:    s.UserId,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *ScheduleMapper) SubjectToModel(s *entity.Subject) *model.Subject {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Subject{
		Id:        s.Id,
		UserId:    s.UserId,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ScheduleMapper) SubjectsToEntities(models []*model.Subject) []*entity.Subject {
	entities := make([]*entity.Subject, len(models))
	for i, s := range models {
		entities[i] = m.SubjectToEntity(s)
	}
	return entities
}

func (m *ScheduleMapper) EventToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Event{
		Id:        e.Id,
		UserId:    e.UserId,
		Title:     e.Title,
		Subject:   e.Subject,
		Location:  e.Location,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *ScheduleMapper) EventToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Event{
		Id:        e.Id,
		UserId:    e.UserId,
		Title:     e.Title,
		Subject:   e.Subject,
		Location:  e.Location,
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ScheduleMapper) EventsToEntities(models []*model.Event) []*entity.Event {
	entities := make([]*entity.Event, len(models))
	for i, e := range models {
		entities[i] = m.EventToEntity(e)
	}
	return entities
}
