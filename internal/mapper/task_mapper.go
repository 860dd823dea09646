package mapper

import (
	"encoding/json"
	"time"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	tags := []string{}
	if len(t.Tags) > 0 {
		// Malformed JSONB leaves tags empty rather than failing the read
		_ = json.Unmarshal(t.Tags, &tags)
	}

	return &entity.Task{
		Id:                t.Id,
		UserId:            t.UserId,
		Title:             t.Title,
		Description:       t.Description,
		Subject:           t.Subject,
		DueDate:           t.DueDate,
		Priority:          entity.TaskPriority(t.Priority),
		Status:            entity.TaskStatus(t.Status),
		EstimatedDuration: t.EstimatedDuration,
		Tags:              tags,
		Notes:             t.Notes,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         t.DeletedAt.Valid,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	return &model.Task{
		Id:                t.Id,
		UserId:            t.UserId,
		Title:             t.Title,
		Description:       t.Description,
		Subject:           t.Subject,
		DueDate:           t.DueDate,
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		EstimatedDuration: t.EstimatedDuration,
		Tags:              datatypes.JSON(tagsJSON),
		Notes:             t.Notes,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *TaskMapper) ToEntities(models []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(models))
	for i, t := range models {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
