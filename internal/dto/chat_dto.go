package dto

import (
	"time"

	"studytrack-be/internal/entity"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

// ResourcesDTO is the full post-turn snapshot of the user's data. The client
// replaces its local state with it wholesale after every chat turn.
type ResourcesDTO struct {
	Tasks    []TaskResponse    `json:"tasks"`
	Subjects []SubjectResponse `json:"subjects"`
	Events   []EventResponse   `json:"events"`
}

type SendChatResponse struct {
	SessionId uuid.UUID              `json:"session_id"`
	Intent    string                 `json:"intent"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Reply     string                 `json:"reply"`
	Resources ResourcesDTO           `json:"resources"`
}

type GetAllSessionsResponse struct {
	Id            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Intent    string                 `json:"intent,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// GenerateTitleMessage is the payload enqueued for the session title worker
// after a session's first exchange.
type GenerateTitleMessage struct {
	SessionId    uuid.UUID `json:"session_id"`
	FirstMessage string    `json:"first_message"`
}

func SessionToResponse(s *entity.ChatSession) GetAllSessionsResponse {
	return GetAllSessionsResponse{
		Id:            s.Id,
		Title:         s.Title,
		Status:        string(s.Status),
		LastMessageAt: s.LastMessageAt,
		CreatedAt:     s.CreatedAt,
	}
}

func MessageToHistoryResponse(m *entity.ChatMessage) GetChatHistoryResponse {
	resp := GetChatHistoryResponse{
		Id:        m.Id,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Metadata != nil {
		resp.Intent = m.Metadata.Intent
		resp.Payload = m.Metadata.Payload
	}
	return resp
}
