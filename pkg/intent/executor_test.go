package intent

import (
	"context"
	"testing"
	"time"

	"studytrack-be/internal/entity"
	"studytrack-be/internal/repository/inmemory"
	"studytrack-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestExecutor() (*Executor, *inmemory.Store, *recordingPublisher) {
	store := inmemory.NewStore()
	pub := &recordingPublisher{}
	return NewExecutor(inmemory.NewFactory(store), pub, nopLogger{}), store, pub
}

func seedTask(t *testing.T, executor *Executor, userId uuid.UUID, title string) *entity.Task {
	t.Helper()
	outcome, err := executor.Execute(context.Background(), userId, IntentCreateTask, map[string]interface{}{
		"title": title,
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Result.Task)
	return outcome.Result.Task
}

func TestExecuteCreateTaskDefaults(t *testing.T) {
	executor, _, pub := newTestExecutor()
	userId := uuid.New()

	outcome, err := executor.Execute(context.Background(), userId, IntentCreateTask, map[string]interface{}{
		"title":  "  Read chapter 4  ",
		"status": "completed", // must be ignored
	})
	require.NoError(t, err)

	task := outcome.Result.Task
	require.NotNil(t, task)
	assert.Equal(t, "Read chapter 4", task.Title)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	assert.Equal(t, entity.TaskPriorityMedium, task.Priority)
	assert.NotNil(t, task.Tags)
	assert.Empty(t, task.Tags)
	assert.Equal(t, userId, task.UserId)

	require.NotNil(t, outcome.Resources)
	require.Len(t, outcome.Resources.Tasks, 1)
	assert.Equal(t, task.Id, outcome.Resources.Tasks[0].Id)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeTaskCreated, pub.published[0].EventType())
}

func TestExecuteCreateTaskFields(t *testing.T) {
	executor, _, _ := newTestExecutor()
	userId := uuid.New()

	outcome, err := executor.Execute(context.Background(), userId, IntentCreateTask, map[string]interface{}{
		"title":             "Essay draft",
		"priority":          "High",
		"dueDate":           "2026-09-15",
		"estimatedDuration": float64(90),
		"tags":              []interface{}{"writing", "english"},
	})
	require.NoError(t, err)

	task := outcome.Result.Task
	require.NotNil(t, task)
	assert.Equal(t, entity.TaskPriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-09-15", task.DueDate.Format("2006-01-02"))
	require.NotNil(t, task.EstimatedDuration)
	assert.Equal(t, 90, *task.EstimatedDuration)
	assert.Equal(t, []string{"writing", "english"}, task.Tags)
}

func TestExecuteCreateTaskNonNumericDurationIgnored(t *testing.T) {
	executor, _, _ := newTestExecutor()

	outcome, err := executor.Execute(context.Background(), uuid.New(), IntentCreateTask, map[string]interface{}{
		"title":             "Essay draft",
		"estimatedDuration": "ninety minutes",
	})
	require.NoError(t, err)
	assert.Nil(t, outcome.Result.Task.EstimatedDuration)
}

func TestExecuteUpdateTaskUnknownId(t *testing.T) {
	executor, _, _ := newTestExecutor()
	userId := uuid.New()
	seedTask(t, executor, userId, "Existing")

	// An id the model invented outright.
	outcome, err := executor.Execute(context.Background(), userId, IntentUpdateTask, map[string]interface{}{
		"id":    "does-not-exist",
		"title": "New title",
	})
	require.NoError(t, err)
	assert.Nil(t, outcome.Result.Task)
	assert.Len(t, outcome.Resources.Tasks, 1)

	// A well-formed uuid that matches nothing.
	outcome, err = executor.Execute(context.Background(), userId, IntentUpdateTask, map[string]interface{}{
		"id": uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Nil(t, outcome.Result.Task)
}

func TestExecuteUpdateTaskPartial(t *testing.T) {
	executor, _, _ := newTestExecutor()
	userId := uuid.New()
	created := seedTask(t, executor, userId, "Original title")

	outcome, err := executor.Execute(context.Background(), userId, IntentUpdateTask, map[string]interface{}{
		"id":       created.Id.String(),
		"priority": "Urgent",
	})
	require.NoError(t, err)

	task := outcome.Result.Task
	require.NotNil(t, task)
	assert.Equal(t, "Original title", task.Title)
	assert.Equal(t, entity.TaskPriorityUrgent, task.Priority)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	require.NotNil(t, task.UpdatedAt)
}

func TestExecuteUpdateTaskStatusCompletedStampsTime(t *testing.T) {
	executor, _, _ := newTestExecutor()
	userId := uuid.New()
	created := seedTask(t, executor, userId, "Lab report")

	outcome, err := executor.Execute(context.Background(), userId, IntentUpdateTask, map[string]interface{}{
		"id":     created.Id.String(),
		"status": "completed",
	})
	require.NoError(t, err)

	task := outcome.Result.Task
	require.NotNil(t, task)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.WithinDuration(t, time.Now(), *task.CompletedAt, time.Minute)
}

func TestExecuteCompleteTask(t *testing.T) {
	executor, _, pub := newTestExecutor()
	userId := uuid.New()
	created := seedTask(t, executor, userId, "Flashcards")
	pub.published = nil

	outcome, err := executor.Execute(context.Background(), userId, IntentCompleteTask, map[string]interface{}{
		"id": created.Id.String(),
	})
	require.NoError(t, err)

	task := outcome.Result.Task
	require.NotNil(t, task)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeTaskCompleted, pub.published[0].EventType())
}

func TestExecuteCompleteTaskUnknownIdPublishesNothing(t *testing.T) {
	executor, _, pub := newTestExecutor()

	outcome, err := executor.Execute(context.Background(), uuid.New(), IntentCompleteTask, map[string]interface{}{
		"id": uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Nil(t, outcome.Result.Task)
	assert.Empty(t, pub.published)
}

func TestExecuteCreateSubject(t *testing.T) {
	executor, _, pub := newTestExecutor()
	userId := uuid.New()

	outcome, err := executor.Execute(context.Background(), userId, IntentCreateSubject, map[string]interface{}{
		"name": " Biology ",
	})
	require.NoError(t, err)

	subject := outcome.Result.Subject
	require.NotNil(t, subject)
	assert.Equal(t, "Biology", subject.Name)
	assert.NotEmpty(t, subject.Color)

	outcome, err = executor.Execute(context.Background(), userId, IntentCreateSubject, map[string]interface{}{
		"name":  "Chemistry",
		"color": "#FF5733",
	})
	require.NoError(t, err)
	assert.Equal(t, "#FF5733", outcome.Result.Subject.Color)

	require.Len(t, pub.published, 2)
	assert.Equal(t, events.TypeSubjectCreated, pub.published[0].EventType())
}

func TestExecuteNoneReturnsSnapshotOnly(t *testing.T) {
	executor, _, pub := newTestExecutor()
	userId := uuid.New()
	seedTask(t, executor, userId, "Existing")
	pub.published = nil

	outcome, err := executor.Execute(context.Background(), userId, IntentNone, nil)
	require.NoError(t, err)

	assert.Nil(t, outcome.Result.Task)
	assert.Nil(t, outcome.Result.Subject)
	require.NotNil(t, outcome.Resources)
	assert.Len(t, outcome.Resources.Tasks, 1)
	assert.Empty(t, pub.published)
}

func TestExecuteScopesByUser(t *testing.T) {
	executor, _, _ := newTestExecutor()
	ownerA := uuid.New()
	ownerB := uuid.New()
	taskA := seedTask(t, executor, ownerA, "A's task")
	seedTask(t, executor, ownerB, "B's task")

	// B cannot complete A's task; it resolves to not-found.
	outcome, err := executor.Execute(context.Background(), ownerB, IntentCompleteTask, map[string]interface{}{
		"id": taskA.Id.String(),
	})
	require.NoError(t, err)
	assert.Nil(t, outcome.Result.Task)

	// Each snapshot only contains the owner's data.
	require.Len(t, outcome.Resources.Tasks, 1)
	assert.Equal(t, "B's task", outcome.Resources.Tasks[0].Title)
}

func TestExecuteNilPublisher(t *testing.T) {
	store := inmemory.NewStore()
	executor := NewExecutor(inmemory.NewFactory(store), nil, nopLogger{})

	outcome, err := executor.Execute(context.Background(), uuid.New(), IntentCreateTask, map[string]interface{}{
		"title": "No events today",
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Result.Task)
}
