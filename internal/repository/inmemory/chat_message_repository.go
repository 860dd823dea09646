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

type ChatMessageRepository struct {
	store *Store
}

func NewChatMessageRepository(store *Store) contract.ChatMessageRepository {
	return &ChatMessageRepository{store: store}
}

func (r *ChatMessageRepository) matches(m entity.ChatMessage, q parsedQuery) bool {
	if q.id != nil && m.Id != *q.id {
		return false
	}
	if q.sessionId != nil && m.ChatSessionId != *q.sessionId {
		return false
	}
	for field, value := range q.filters {
		switch field {
		case "role":
			if m.Role != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.MessageCreateErr != nil {
		return r.store.MessageCreateErr
	}
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.store.messages = append(r.store.messages, cloneMessage(*message))
	return nil
}

func (r *ChatMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var matched []entity.ChatMessage
	for _, m := range r.store.messages {
		if r.matches(m, q) {
			matched = append(matched, cloneMessage(m))
		}
	}
	if q.orderBy != nil && q.orderBy.Field == "created_at" {
		desc := q.orderBy.Desc
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
	}
	start, end := q.window(len(matched))
	result := make([]*entity.ChatMessage, 0, end-start)
	for i := start; i < end; i++ {
		m := matched[i]
		result = append(result, &m)
	}
	return result, nil
}

func (r *ChatMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var count int64
	for _, m := range r.store.messages {
		if r.matches(m, q) {
			count++
		}
	}
	return count, nil
}

func (r *ChatMessageRepository) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}
