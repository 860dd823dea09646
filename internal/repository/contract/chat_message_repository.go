package contract

import (
	"context"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository is append-only: messages are created, never updated.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
}
