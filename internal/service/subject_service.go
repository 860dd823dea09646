package service

import (
	"context"
	"strings"
	"time"

	"studytrack-be/internal/constant"
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

type ISubjectService interface {
	CreateSubject(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	UpdateSubject(ctx context.Context, userId, subjectId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	DeleteSubject(ctx context.Context, userId, subjectId uuid.UUID) error
	GetAllSubjects(ctx context.Context, userId uuid.UUID) ([]dto.SubjectResponse, error)
}

type subjectService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewSubjectService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, log logger.ILogger) ISubjectService {
	return &subjectService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *subjectService) CreateSubject(ctx context.Context, userId uuid.UUID, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := &entity.Subject{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      strings.TrimSpace(req.Name),
		Color:     constant.DefaultSubjectColor,
		CreatedAt: time.Now(),
	}
	if req.Color != "" {
		subject.Color = req.Color
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubjectRepository().Create(ctx, subject); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSubjectCreated(userId, subject.Id, subject.Name)); err != nil {
			s.logger.Warn("SubjectService", "failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}

	resp := dto.SubjectToResponse(subject)
	return &resp, nil
}

func (s *subjectService) UpdateSubject(ctx context.Context, userId, subjectId uuid.UUID, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SubjectRepository()

	subject, err := repo.FindOne(ctx,
		specification.ByID{ID: subjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, serverutils.NotFound("subject not found")
	}

	now := time.Now()
	if req.Name != nil {
		subject.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		subject.Color = *req.Color
	}
	subject.UpdatedAt = &now

	if err := repo.Update(ctx, subject); err != nil {
		return nil, err
	}

	resp := dto.SubjectToResponse(subject)
	return &resp, nil
}

func (s *subjectService) DeleteSubject(ctx context.Context, userId, subjectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SubjectRepository()

	subject, err := repo.FindOne(ctx,
		specification.ByID{ID: subjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if subject == nil {
		return serverutils.NotFound("subject not found")
	}

	return repo.Delete(ctx, subjectId)
}

func (s *subjectService) GetAllSubjects(ctx context.Context, userId uuid.UUID) ([]dto.SubjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subjects, err := uow.SubjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return dto.SubjectsToResponses(subjects), nil
}
