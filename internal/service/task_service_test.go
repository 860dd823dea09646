package service

import (
	"context"
	"testing"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/inmemory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService() ITaskService {
	return NewTaskService(inmemory.NewFactory(inmemory.NewStore()), nil, testLogger{})
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := newTaskService()
	userId := uuid.New()

	res, err := svc.CreateTask(context.Background(), userId, &dto.CreateTaskRequest{
		Title: "  Read chapter 4  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Read chapter 4", res.Title)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, "Medium", res.Priority)
	assert.NotNil(t, res.Tags)
	assert.Empty(t, res.Tags)
}

func TestUpdateTaskPartialFields(t *testing.T) {
	svc := newTaskService()
	userId := uuid.New()

	created, err := svc.CreateTask(context.Background(), userId, &dto.CreateTaskRequest{
		Title:       "Lab report",
		Description: "Write up the results",
	})
	require.NoError(t, err)

	newPriority := "High"
	updated, err := svc.UpdateTask(context.Background(), userId, created.Id, &dto.UpdateTaskRequest{
		Priority: &newPriority,
	})
	require.NoError(t, err)

	assert.Equal(t, "High", updated.Priority)
	assert.Equal(t, "Lab report", updated.Title)
	assert.Equal(t, "Write up the results", updated.Description)
	require.NotNil(t, updated.UpdatedAt)
}

func TestCompleteTask(t *testing.T) {
	svc := newTaskService()
	userId := uuid.New()

	created, err := svc.CreateTask(context.Background(), userId, &dto.CreateTaskRequest{Title: "Flashcards"})
	require.NoError(t, err)

	completed, err := svc.CompleteTask(context.Background(), userId, created.Id)
	require.NoError(t, err)

	assert.Equal(t, "completed", completed.Status)
	require.NotNil(t, completed.CompletedAt)
}

func TestTaskOperationsScopeByOwner(t *testing.T) {
	svc := newTaskService()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.CreateTask(context.Background(), owner, &dto.CreateTaskRequest{Title: "Private"})
	require.NoError(t, err)

	assertNotFound := func(t *testing.T, err error) {
		t.Helper()
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, fiber.StatusNotFound, appErr.Code)
	}

	_, err = svc.GetTask(context.Background(), intruder, created.Id)
	assertNotFound(t, err)

	_, err = svc.CompleteTask(context.Background(), intruder, created.Id)
	assertNotFound(t, err)

	err = svc.DeleteTask(context.Background(), intruder, created.Id)
	assertNotFound(t, err)

	// The task is untouched.
	got, err := svc.GetTask(context.Background(), owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

func TestDeleteTaskHidesIt(t *testing.T) {
	svc := newTaskService()
	userId := uuid.New()

	created, err := svc.CreateTask(context.Background(), userId, &dto.CreateTaskRequest{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(context.Background(), userId, created.Id))

	_, err = svc.GetTask(context.Background(), userId, created.Id)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)

	all, err := svc.GetAllTasks(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, all)
}
