package service

import (
	"context"
	"testing"
	"time"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/inmemory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventService() IEventService {
	return NewEventService(inmemory.NewFactory(inmemory.NewStore()))
}

func TestCreateEventValidatesTimeOrder(t *testing.T) {
	svc := newEventService()
	now := time.Now()

	_, err := svc.CreateEvent(context.Background(), uuid.New(), &dto.CreateEventRequest{
		Title:    "Physics exam",
		StartsAt: now,
		EndsAt:   now.Add(-time.Hour),
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
}

func TestCreateAndListEventsSortedByStart(t *testing.T) {
	svc := newEventService()
	userId := uuid.New()
	base := time.Now()

	later, err := svc.CreateEvent(context.Background(), userId, &dto.CreateEventRequest{
		Title:    "Evening seminar",
		StartsAt: base.Add(8 * time.Hour),
		EndsAt:   base.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	earlier, err := svc.CreateEvent(context.Background(), userId, &dto.CreateEventRequest{
		Title:    "Morning lecture",
		StartsAt: base.Add(1 * time.Hour),
		EndsAt:   base.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	all, err := svc.GetAllEvents(context.Background(), userId)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, earlier.Id, all[0].Id)
	assert.Equal(t, later.Id, all[1].Id)
}

func TestUpdateEventRejectsInvertedTimes(t *testing.T) {
	svc := newEventService()
	userId := uuid.New()
	base := time.Now()

	created, err := svc.CreateEvent(context.Background(), userId, &dto.CreateEventRequest{
		Title:    "Study group",
		StartsAt: base.Add(time.Hour),
		EndsAt:   base.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	badEnd := base.Add(30 * time.Minute)
	_, err = svc.UpdateEvent(context.Background(), userId, created.Id, &dto.UpdateEventRequest{
		EndsAt: &badEnd,
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
}

func TestEventOwnershipScoping(t *testing.T) {
	svc := newEventService()
	owner := uuid.New()
	base := time.Now()

	created, err := svc.CreateEvent(context.Background(), owner, &dto.CreateEventRequest{
		Title:    "Private event",
		StartsAt: base,
		EndsAt:   base.Add(time.Hour),
	})
	require.NoError(t, err)

	err = svc.DeleteEvent(context.Background(), uuid.New(), created.Id)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)
}
