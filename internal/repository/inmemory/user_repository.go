package inmemory

import (
	"context"
	"time"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/repository/contract"
	"studytrack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) matches(u entity.User, q parsedQuery) bool {
	if q.id != nil && u.Id != *q.id {
		return false
	}
	if q.email != "" && u.Email != q.email {
		return false
	}
	return true
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.users {
		if existing.Id == user.Id {
			r.store.users[i] = *user
			return nil
		}
	}
	r.store.users = append(r.store.users, *user)
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	for _, u := range r.store.users {
		if r.matches(u, q) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}
