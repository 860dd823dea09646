package inmemory

import (
	"context"

	"studytrack-be/internal/repository/contract"
	"studytrack-be/internal/repository/unitofwork"
)

// unitOfWorkImpl satisfies the UnitOfWork contract over the shared Store.
// Begin/Commit/Rollback are no-ops: the in-memory store applies writes
// immediately, which is sufficient for the service-level tests it backs.
type unitOfWorkImpl struct {
	store *Store
}

func (u *unitOfWorkImpl) Begin(ctx context.Context) error { return nil }
func (u *unitOfWorkImpl) Commit() error                   { return nil }
func (u *unitOfWorkImpl) Rollback() error                 { return nil }

func (u *unitOfWorkImpl) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *unitOfWorkImpl) TaskRepository() contract.TaskRepository {
	return NewTaskRepository(u.store)
}

func (u *unitOfWorkImpl) SubjectRepository() contract.SubjectRepository {
	return NewSubjectRepository(u.store)
}

func (u *unitOfWorkImpl) EventRepository() contract.EventRepository {
	return NewEventRepository(u.store)
}

func (u *unitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return NewChatSessionRepository(u.store)
}

func (u *unitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return NewChatMessageRepository(u.store)
}

type factory struct {
	store *Store
}

// NewFactory returns a RepositoryFactory whose units of work all share the
// given store.
func NewFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWorkImpl{store: f.store}
}
