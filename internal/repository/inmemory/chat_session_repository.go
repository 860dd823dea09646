package inmemory

import (
	"context"
	"sort"
	"time"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/repository/contract"
	"studytrack-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository struct {
	store *Store
}

func NewChatSessionRepository(store *Store) contract.ChatSessionRepository {
	return &ChatSessionRepository{store: store}
}

func (r *ChatSessionRepository) matches(s entity.ChatSession, q parsedQuery) bool {
	if s.IsDeleted {
		return false
	}
	if q.id != nil && s.Id != *q.id {
		return false
	}
	if q.userId != nil && s.UserId != *q.userId {
		return false
	}
	for field, value := range q.filters {
		switch field {
		case "status":
			if string(s.Status) != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *ChatSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.Status == "" {
		session.Status = entity.SessionStatusActive
	}
	r.store.sessions = append(r.store.sessions, *session)
	return nil
}

func (r *ChatSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.sessions {
		if existing.Id == session.Id {
			r.store.sessions[i] = *session
			return nil
		}
	}
	r.store.sessions = append(r.store.sessions, *session)
	return nil
}

func (r *ChatSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.sessions {
		if r.store.sessions[i].Id == id {
			r.store.sessions[i].IsDeleted = true
			r.store.sessions[i].DeletedAt = &now
		}
	}
	return nil
}

func (r *ChatSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	for _, s := range r.store.sessions {
		if r.matches(s, q) {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ChatSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var matched []entity.ChatSession
	for _, s := range r.store.sessions {
		if r.matches(s, q) {
			matched = append(matched, s)
		}
	}
	if q.orderBy != nil {
		desc := q.orderBy.Desc
		key := func(s entity.ChatSession) time.Time {
			if q.orderBy.Field == "last_message_at" && s.LastMessageAt != nil {
				return *s.LastMessageAt
			}
			return s.CreatedAt
		}
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return key(matched[i]).After(key(matched[j]))
			}
			return key(matched[i]).Before(key(matched[j]))
		})
	}
	start, end := q.window(len(matched))
	result := make([]*entity.ChatSession, 0, end-start)
	for i := start; i < end; i++ {
		s := matched[i]
		result = append(result, &s)
	}
	return result, nil
}

func (r *ChatSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var count int64
	for _, s := range r.store.sessions {
		if r.matches(s, q) {
			count++
		}
	}
	return count, nil
}
