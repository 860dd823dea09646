package service

import (
	"context"
	"strings"
	"time"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/specification"
	"studytrack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEventService interface {
	CreateEvent(ctx context.Context, userId uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, userId, eventId uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, userId, eventId uuid.UUID) error
	GetAllEvents(ctx context.Context, userId uuid.UUID) ([]dto.EventResponse, error)
}

type eventService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEventService(uowFactory unitofwork.RepositoryFactory) IEventService {
	return &eventService{uowFactory: uowFactory}
}

func (s *eventService) CreateEvent(ctx context.Context, userId uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, serverutils.BadRequest("ends_at must be after starts_at")
	}

	event := &entity.Event{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     strings.TrimSpace(req.Title),
		Subject:   req.Subject,
		Location:  req.Location,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EventRepository().Create(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, userId, eventId uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.EventRepository()

	event, err := repo.FindOne(ctx,
		specification.ByID{ID: eventId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, serverutils.NotFound("event not found")
	}

	now := time.Now()
	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subject != nil {
		event.Subject = *req.Subject
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, serverutils.BadRequest("ends_at must be after starts_at")
	}
	event.UpdatedAt = &now

	if err := repo.Update(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, userId, eventId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.EventRepository()

	event, err := repo.FindOne(ctx,
		specification.ByID{ID: eventId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if event == nil {
		return serverutils.NotFound("event not found")
	}

	return repo.Delete(ctx, eventId)
}

func (s *eventService) GetAllEvents(ctx context.Context, userId uuid.UUID) ([]dto.EventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	events, err := uow.EventRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "starts_at"},
	)
	if err != nil {
		return nil, err
	}

	return dto.EventsToResponses(events), nil
}
