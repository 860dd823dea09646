package service

import (
	"context"
	"strings"
	"time"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/pkg/logger"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/specification"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/pkg/events"
	pktNats "studytrack-be/pkg/nats"

	"github.com/google/uuid"
)

type ITaskService interface {
	CreateTask(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	CompleteTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userId, taskId uuid.UUID) error
	GetTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error)
	GetAllTasks(ctx context.Context, userId uuid.UUID) ([]dto.TaskResponse, error)
}

type taskService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) ITaskService {
	return &taskService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *taskService) CreateTask(ctx context.Context, userId uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task := &entity.Task{
		Id:                uuid.New(),
		UserId:            userId,
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		Subject:           req.Subject,
		DueDate:           req.DueDate,
		Priority:          entity.TaskPriorityMedium,
		Status:            entity.TaskStatusPending,
		EstimatedDuration: req.EstimatedDuration,
		Tags:              req.Tags,
		Notes:             req.Notes,
		CreatedAt:         time.Now(),
	}
	if req.Priority != "" {
		task.Priority = entity.TaskPriority(req.Priority)
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TaskRepository().Create(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewTaskCreated(userId, task.Id, task.Title))

	resp := dto.TaskToResponse(task)
	return &resp, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userId, taskId uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TaskRepository()

	task, err := repo.FindOne(ctx,
		specification.ByID{ID: taskId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NotFound("task not found")
	}

	now := time.Now()
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Subject != nil {
		task.Subject = *req.Subject
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		task.Priority = entity.TaskPriority(*req.Priority)
	}
	if req.Status != nil {
		task.Status = entity.TaskStatus(*req.Status)
		if task.Status == entity.TaskStatusCompleted && task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	}
	if req.EstimatedDuration != nil {
		task.EstimatedDuration = req.EstimatedDuration
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	task.UpdatedAt = &now

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}

	resp := dto.TaskToResponse(task)
	return &resp, nil
}

func (s *taskService) CompleteTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TaskRepository()

	task, err := repo.FindOne(ctx,
		specification.ByID{ID: taskId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NotFound("task not found")
	}

	now := time.Now()
	task.Status = entity.TaskStatusCompleted
	task.CompletedAt = &now
	task.UpdatedAt = &now

	if err := repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewTaskCompleted(userId, task.Id, task.Title))

	resp := dto.TaskToResponse(task)
	return &resp, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userId, taskId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TaskRepository()

	task, err := repo.FindOne(ctx,
		specification.ByID{ID: taskId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if task == nil {
		return serverutils.NotFound("task not found")
	}

	return repo.Delete(ctx, taskId)
}

func (s *taskService) GetTask(ctx context.Context, userId, taskId uuid.UUID) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: taskId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NotFound("task not found")
	}

	resp := dto.TaskToResponse(task)
	return &resp, nil
}

func (s *taskService) GetAllTasks(ctx context.Context, userId uuid.UUID) ([]dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tasks, err := uow.TaskRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return dto.TasksToResponses(tasks), nil
}

func (s *taskService) publish(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("TaskService", "failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
