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

type SubjectRepository struct {
	store *Store
}

func NewSubjectRepository(store *Store) contract.SubjectRepository {
	return &SubjectRepository{store: store}
}

func (r *SubjectRepository) matches(s entity.Subject, q parsedQuery) bool {
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
		case "name":
			if s.Name != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *SubjectRepository) Create(ctx context.Context, subject *entity.Subject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if subject.Id == uuid.Nil {
		subject.Id = uuid.New()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now()
	}
	r.store.subjects = append(r.store.subjects, *subject)
	return nil
}

func (r *SubjectRepository) Update(ctx context.Context, subject *entity.Subject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.subjects {
		if existing.Id == subject.Id {
			r.store.subjects[i] = *subject
			return nil
		}
	}
	r.store.subjects = append(r.store.subjects, *subject)
	return nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.subjects {
		if r.store.subjects[i].Id == id {
			r.store.subjects[i].IsDeleted = true
			r.store.subjects[i].DeletedAt = &now
		}
	}
	return nil
}

func (r *SubjectRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	for _, s := range r.store.subjects {
		if r.matches(s, q) {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *SubjectRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subject, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var matched []entity.Subject
	for _, s := range r.store.subjects {
		if r.matches(s, q) {
			matched = append(matched, s)
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
	result := make([]*entity.Subject, 0, end-start)
	for i := start; i < end; i++ {
		s := matched[i]
		result = append(result, &s)
	}
	return result, nil
}

func (r *SubjectRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var count int64
	for _, s := range r.store.subjects {
		if r.matches(s, q) {
			count++
		}
	}
	return count, nil
}
