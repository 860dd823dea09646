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

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) contract.EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) matches(e entity.Event, q parsedQuery) bool {
	if e.IsDeleted {
		return false
	}
	if q.id != nil && e.Id != *q.id {
		return false
	}
	if q.userId != nil && e.UserId != *q.userId {
		return false
	}
	return true
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.store.events = append(r.store.events, *event)
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.events {
		if existing.Id == event.Id {
			r.store.events[i] = *event
			return nil
		}
	}
	r.store.events = append(r.store.events, *event)
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.events {
		if r.store.events[i].Id == id {
			r.store.events[i].IsDeleted = true
			r.store.events[i].DeletedAt = &now
		}
	}
	return nil
}

func (r *EventRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	for _, e := range r.store.events {
		if r.matches(e, q) {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (r *EventRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var matched []entity.Event
	for _, e := range r.store.events {
		if r.matches(e, q) {
			matched = append(matched, e)
		}
	}
	if q.orderBy != nil && q.orderBy.Field == "starts_at" {
		desc := q.orderBy.Desc
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].StartsAt.After(matched[j].StartsAt)
			}
			return matched[i].StartsAt.Before(matched[j].StartsAt)
		})
	}
	start, end := q.window(len(matched))
	result := make([]*entity.Event, 0, end-start)
	for i := start; i < end; i++ {
		e := matched[i]
		result = append(result, &e)
	}
	return result, nil
}

func (r *EventRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var count int64
	for _, e := range r.store.events {
		if r.matches(e, q) {
			count++
		}
	}
	return count, nil
}
