package intent

import (
	"context"
	"strings"
	"time"

	"studytrack-be/internal/constant"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/pkg/logger"
	"studytrack-be/internal/repository/specification"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/pkg/events"

	"github.com/google/uuid"
)

// Snapshot is a full read of the user's resources, returned after every
// turn so the client can replace its local state wholesale instead of
// applying deltas.
type Snapshot struct {
	Tasks    []*entity.Task
	Subjects []*entity.Subject
	Events   []*entity.Event
}

// Result carries the entity a mutation produced, when applicable. A nil
// Task on update_task/complete_task means the target id did not exist for
// this user; that is not an error.
type Result struct {
	Task    *entity.Task
	Subject *entity.Subject
}

// Outcome is what one executed action yields: the mutation result plus a
// fresh snapshot.
type Outcome struct {
	Resources *Snapshot
	Result    Result
}

// EventPublisher decouples the executor from the NATS transport. A nil
// publisher disables event emission.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Executor maps a validated (intent, payload) pair to a data mutation.
type Executor struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  EventPublisher
	logger     logger.ILogger
}

func NewExecutor(uowFactory unitofwork.RepositoryFactory, publisher EventPublisher, log logger.ILogger) *Executor {
	return &Executor{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Execute performs the mutation for the given intent and returns the
// outcome with a post-mutation snapshot. Unknown target ids yield a nil
// result, not an error; only storage failures propagate.
func (e *Executor) Execute(ctx context.Context, userId uuid.UUID, in Intent, payload map[string]interface{}) (*Outcome, error) {
	outcome := &Outcome{}

	switch in {
	case IntentCreateTask:
		task, err := e.createTask(ctx, userId, payload)
		if err != nil {
			return nil, err
		}
		outcome.Result.Task = task
		e.emit(ctx, events.NewTaskCreated(userId, task.Id, task.Title))

	case IntentUpdateTask:
		task, err := e.updateTask(ctx, userId, payload, false)
		if err != nil {
			return nil, err
		}
		outcome.Result.Task = task

	case IntentCompleteTask:
		task, err := e.updateTask(ctx, userId, payload, true)
		if err != nil {
			return nil, err
		}
		outcome.Result.Task = task
		if task != nil {
			e.emit(ctx, events.NewTaskCompleted(userId, task.Id, task.Title))
		}

	case IntentCreateSubject:
		subject, err := e.createSubject(ctx, userId, payload)
		if err != nil {
			return nil, err
		}
		outcome.Result.Subject = subject
		e.emit(ctx, events.NewSubjectCreated(userId, subject.Id, subject.Name))

	case IntentNone:
		// No mutation; the snapshot below still refreshes the client.
	}

	snapshot, err := e.LoadSnapshot(ctx, userId)
	if err != nil {
		return nil, err
	}
	outcome.Resources = snapshot
	return outcome, nil
}

// LoadSnapshot re-reads the user's full task, subject, and event
// collections.
func (e *Executor) LoadSnapshot(ctx context.Context, userId uuid.UUID) (*Snapshot, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	owned := specification.UserOwnedBy{UserID: userId}

	tasks, err := uow.TaskRepository().FindAll(ctx, owned, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	subjects, err := uow.SubjectRepository().FindAll(ctx, owned, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	evts, err := uow.EventRepository().FindAll(ctx, owned, specification.OrderBy{Field: "starts_at"})
	if err != nil {
		return nil, err
	}

	return &Snapshot{Tasks: tasks, Subjects: subjects, Events: evts}, nil
}

func (e *Executor) createTask(ctx context.Context, userId uuid.UUID, payload map[string]interface{}) (*entity.Task, error) {
	task := &entity.Task{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       strings.TrimSpace(stringField(payload, "title")),
		Description: stringField(payload, "description"),
		Subject:     stringField(payload, "subject"),
		Notes:       stringField(payload, "notes"),
		Priority:    entity.TaskPriorityMedium,
		Status:      entity.TaskStatusPending, // forced regardless of input
		Tags:        []string{},
		CreatedAt:   time.Now(),
	}

	if priority := stringField(payload, "priority"); priority != "" {
		task.Priority = entity.TaskPriority(priority)
	}
	if due, ok := dateField(payload, "dueDate"); ok {
		task.DueDate = &due
	}
	// estimatedDuration passes through only when it is actually numeric.
	if raw, ok := payload["estimatedDuration"].(float64); ok {
		minutes := int(raw)
		task.EstimatedDuration = &minutes
	}
	if rawTags, ok := payload["tags"].([]interface{}); ok {
		for _, t := range rawTags {
			if tag, ok := t.(string); ok {
				task.Tags = append(task.Tags, tag)
			}
		}
	}

	uow := e.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// updateTask applies a partial update to the task identified by payload id.
// complete toggles the terminal completed state instead of reading fields
// from the payload.
func (e *Executor) updateTask(ctx context.Context, userId uuid.UUID, payload map[string]interface{}, complete bool) (*entity.Task, error) {
	targetId, err := uuid.Parse(stringField(payload, "id"))
	if err != nil {
		// An id the model invented. Nothing to update.
		return nil, nil
	}

	uow := e.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TaskRepository()

	task, err := repo.FindOne(ctx,
		specification.ByID{ID: targetId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	now := time.Now()
	if complete {
		task.Status = entity.TaskStatusCompleted
		task.CompletedAt = &now
	} else {
		if title := stringField(payload, "title"); title != "" {
			task.Title = strings.TrimSpace(title)
		}
		if _, present := payload["description"]; present {
			task.Description = stringField(payload, "description")
		}
		if _, present := payload["subject"]; present {
			task.Subject = stringField(payload, "subject")
		}
		if _, present := payload["notes"]; present {
			task.Notes = stringField(payload, "notes")
		}
		if priority := stringField(payload, "priority"); priority != "" {
			task.Priority = entity.TaskPriority(priority)
		}
		if status := stringField(payload, "status"); status != "" {
			task.Status = entity.TaskStatus(status)
			if task.Status == entity.TaskStatusCompleted && task.CompletedAt == nil {
				task.CompletedAt = &now
			}
		}
		if due, ok := dateField(payload, "dueDate"); ok {
			task.DueDate = &due
		}
		if raw, ok := payload["estimatedDuration"].(float64); ok {
			minutes := int(raw)
			task.EstimatedDuration = &minutes
		}
	}
	task.UpdatedAt = &now

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (e *Executor) createSubject(ctx context.Context, userId uuid.UUID, payload map[string]interface{}) (*entity.Subject, error) {
	subject := &entity.Subject{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      strings.TrimSpace(stringField(payload, "name")),
		Color:     constant.DefaultSubjectColor,
		CreatedAt: time.Now(),
	}
	if color := stringField(payload, "color"); color != "" {
		subject.Color = color
	}

	uow := e.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubjectRepository().Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// emit publishes best-effort; a broken event bus must not fail the turn.
func (e *Executor) emit(ctx context.Context, event events.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.Warn("intent_executor", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}

func stringField(payload map[string]interface{}, key string) string {
	value, _ := payload[key].(string)
	return value
}

func dateField(payload map[string]interface{}, key string) (time.Time, bool) {
	value, ok := payload[key].(string)
	if !ok {
		return time.Time{}, false
	}
	return parseDate(value)
}
