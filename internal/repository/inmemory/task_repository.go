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

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) contract.TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) matches(t entity.Task, q parsedQuery) bool {
	if t.IsDeleted {
		return false
	}
	if q.id != nil && t.Id != *q.id {
		return false
	}
	if q.userId != nil && t.UserId != *q.userId {
		return false
	}
	for field, value := range q.filters {
		switch field {
		case "status":
			if string(t.Status) != value {
				return false
			}
		case "subject":
			if t.Subject != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.TaskCreateErr != nil {
		return r.store.TaskCreateErr
	}
	if task.Id == uuid.Nil {
		task.Id = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	r.store.tasks = append(r.store.tasks, cloneTask(*task))
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.tasks {
		if existing.Id == task.Id {
			r.store.tasks[i] = cloneTask(*task)
			return nil
		}
	}
	r.store.tasks = append(r.store.tasks, cloneTask(*task))
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i := range r.store.tasks {
		if r.store.tasks[i].Id == id {
			r.store.tasks[i].IsDeleted = true
			r.store.tasks[i].DeletedAt = &now
		}
	}
	return nil
}

func (r *TaskRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	for _, t := range r.store.tasks {
		if r.matches(t, q) {
			found := cloneTask(t)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *TaskRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var matched []entity.Task
	for _, t := range r.store.tasks {
		if r.matches(t, q) {
			matched = append(matched, cloneTask(t))
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
	result := make([]*entity.Task, 0, end-start)
	for i := start; i < end; i++ {
		t := matched[i]
		result = append(result, &t)
	}
	return result, nil
}

func (r *TaskRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	q := parseSpecs(specs)
	var count int64
	for _, t := range r.store.tasks {
		if r.matches(t, q) {
			count++
		}
	}
	return count, nil
}
