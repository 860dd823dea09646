package unitofwork

import (
	"context"

	"studytrack-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TaskRepository() contract.TaskRepository
	SubjectRepository() contract.SubjectRepository
	EventRepository() contract.EventRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
