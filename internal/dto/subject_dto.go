package dto

import (
	"time"

	"studytrack-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type UpdateSubjectRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type SubjectResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func SubjectToResponse(s *entity.Subject) SubjectResponse {
	return SubjectResponse{
		Id:        s.Id,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func SubjectsToResponses(subjects []*entity.Subject) []SubjectResponse {
	responses := make([]SubjectResponse, len(subjects))
	for i, s := range subjects {
		responses[i] = SubjectToResponse(s)
	}
	return responses
}
