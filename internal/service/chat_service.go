package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studytrack-be/internal/constant"
	"studytrack-be/internal/dto"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/pkg/logger"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/specification"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/pkg/intent"
	"studytrack-be/pkg/llm"
	"studytrack-be/pkg/ratelimit"

	"github.com/google/uuid"
)

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

// ChatOptions bundles the turn policy knobs so the constructor stays
// readable.
type ChatOptions struct {
	RateLimit        int
	RateWindow       time.Duration
	HistoryWindow    int
	MaxMessageLength int
	ModelTimeout     time.Duration
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	executor         *intent.Executor
	provider         llm.LLMProvider
	limiter          ratelimit.Limiter
	publisherService IPublisherService
	logger           logger.ILogger
	opts             ChatOptions
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	executor *intent.Executor,
	provider llm.LLMProvider,
	limiter ratelimit.Limiter,
	publisherService IPublisherService,
	log logger.ILogger,
	opts ChatOptions,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		executor:         executor,
		provider:         provider,
		limiter:          limiter,
		publisherService: publisherService,
		logger:           log,
		opts:             opts,
	}
}

// SendChat runs one conversation turn:
// rate check -> session ready -> model call -> parse -> validate ->
// execute -> persist -> respond. Model and validation failures degrade to
// a fallback turn; only rate limiting and storage failures surface as
// errors.
func (s *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, serverutils.BadRequest("message is required")
	}
	if s.opts.MaxMessageLength > 0 && len(message) > s.opts.MaxMessageLength {
		return nil, serverutils.BadRequest(fmt.Sprintf("message exceeds the %d character limit", s.opts.MaxMessageLength))
	}

	// The rate key is the session when one exists, otherwise the user, so
	// a brand-new conversation cannot dodge the limit.
	rateKey := userId.String()
	if req.SessionId != nil {
		rateKey = req.SessionId.String()
	}
	if !s.limiter.Allow(rateKey, s.opts.RateLimit, s.opts.RateWindow) {
		return nil, serverutils.TooManyRequests("Too many requests. Please wait a moment before sending another message.")
	}

	session, isNew, err := s.getOrCreateSession(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	// Persist the user's message before touching the model. A model failure
	// after this point must not lose their input.
	if err := s.appendMessage(ctx, session, constant.ChatMessageRoleUser, message, nil); err != nil {
		return nil, err
	}

	history, err := s.recentMessages(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	resolved := s.resolveTurn(ctx, userId, history)

	var outcome *intent.Outcome
	if resolved.Intent != intent.IntentNone {
		outcome, err = s.executor.Execute(ctx, userId, resolved.Intent, resolved.Payload)
		if err != nil {
			// The reply still goes out; the failed action is dropped.
			s.logger.Error("ChatService", "intent execution failed", map[string]interface{}{
				"session_id": session.Id,
				"intent":     string(resolved.Intent),
				"error":      err.Error(),
			})
			resolved.Intent = intent.IntentNone
			resolved.Payload = nil
			outcome = nil
		}
	}

	if outcome == nil {
		snapshot, err := s.executor.LoadSnapshot(ctx, userId)
		if err != nil {
			return nil, err
		}
		outcome = &intent.Outcome{Resources: snapshot}
	}

	metadata := &entity.MessageMetadata{
		Intent:  string(resolved.Intent),
		Payload: resolved.Payload,
	}
	if err := s.appendMessage(ctx, session, constant.ChatMessageRoleAssistant, resolved.Reply, metadata); err != nil {
		return nil, err
	}

	if isNew {
		s.requestSessionTitle(ctx, session.Id, message)
	}

	return &dto.SendChatResponse{
		SessionId: session.Id,
		Intent:    string(resolved.Intent),
		Payload:   resolved.Payload,
		Reply:     resolved.Reply,
		Resources: snapshotToResources(outcome.Resources),
	}, nil
}

// resolveTurn calls the model and reduces its raw output to a safe
// intent.Response. It never fails: anything that goes wrong collapses to
// intent none with a usable reply.
func (s *chatService) resolveTurn(ctx context.Context, userId uuid.UUID, history []*entity.ChatMessage) intent.Response {
	fallback := intent.Response{
		Intent: intent.IntentNone,
		Reply:  constant.ChatFallbackReply,
	}

	snapshot, err := s.executor.LoadSnapshot(ctx, userId)
	if err != nil {
		s.logger.Error("ChatService", "failed to load snapshot for prompt", map[string]interface{}{"error": err.Error()})
		return fallback
	}

	turns := make([]llm.Message, 0, len(history)+1)
	turns = append(turns, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: intent.BuildSystemPrompt(snapshot.Tasks, snapshot.Subjects),
	})
	for _, msg := range history {
		turns = append(turns, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	modelCtx, cancel := context.WithTimeout(ctx, s.opts.ModelTimeout)
	defer cancel()

	raw, err := s.provider.Chat(modelCtx, turns, llm.WithTemperature(0.2))
	if err != nil {
		// Timeouts land here too; any partial text is discarded.
		s.logger.Warn("ChatService", "model call failed", map[string]interface{}{"error": err.Error()})
		return fallback
	}

	var candidate map[string]interface{}
	if err := json.Unmarshal([]byte(intent.Normalize(raw)), &candidate); err != nil {
		s.logger.Warn("ChatService", "model output is not valid JSON", map[string]interface{}{
			"error":  err.Error(),
			"output": truncateForLog(raw),
		})
		return fallback
	}

	if result := intent.Validate(candidate); !result.Valid {
		s.logger.Warn("ChatService", "model output failed validation", map[string]interface{}{
			"errors": result.Errors,
		})
		// Keep the candidate's own reply when it has one; the text is
		// user-facing even if the action is not usable.
		if reply, ok := candidate["reply"].(string); ok && strings.TrimSpace(reply) != "" {
			fallback.Reply = strings.TrimSpace(reply)
		}
		return fallback
	}

	payload, _ := candidate["payload"].(map[string]interface{})
	reply, _ := candidate["reply"].(string)
	return intent.Response{
		Intent:  intent.Intent(candidate["intent"].(string)),
		Payload: payload,
		Reply:   strings.TrimSpace(reply),
	}
}

// getOrCreateSession loads the caller's session or creates a fresh one.
// A sessionId belonging to another user does not resolve; the caller gets
// a new session instead of someone else's thread.
func (s *chatService) getOrCreateSession(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID) (*entity.ChatSession, bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ChatSessionRepository()

	if sessionId != nil {
		session, err := repo.FindOne(ctx,
			specification.ByID{ID: *sessionId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, false, err
		}
		if session != nil {
			if !session.Status.AcceptsMessages() {
				return nil, false, serverutils.Conflict("this conversation is closed")
			}
			return session, false, nil
		}
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultSessionTitle,
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, session); err != nil {
		return nil, false, err
	}
	return session, true, nil
}

// appendMessage writes one message and bumps the session's lastMessageAt
// inside a single transaction.
func (s *chatService) appendMessage(ctx context.Context, session *entity.ChatSession, role, content string, metadata *entity.MessageMetadata) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          role,
		Content:       content,
		Metadata:      metadata,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return err
	}

	now := msg.CreatedAt
	session.LastMessageAt = &now
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit()
}

// recentMessages returns the last HistoryWindow messages in chronological
// order.
func (s *chatService) recentMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: s.opts.HistoryWindow},
	)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *chatService) requestSessionTitle(ctx context.Context, sessionId uuid.UUID, firstMessage string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.GenerateTitleMessage{
		SessionId:    sessionId,
		FirstMessage: firstMessage,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatService", "failed to enqueue title generation", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "last_message_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GetAllSessionsResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = dto.SessionToResponse(session)
	}
	return responses, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GetChatHistoryResponse, len(messages))
	for i, msg := range messages {
		responses[i] = dto.MessageToHistoryResponse(msg)
	}
	return responses, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NotFound("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

func snapshotToResources(snapshot *intent.Snapshot) dto.ResourcesDTO {
	resources := dto.ResourcesDTO{
		Tasks:    []dto.TaskResponse{},
		Subjects: []dto.SubjectResponse{},
		Events:   []dto.EventResponse{},
	}
	if snapshot == nil {
		return resources
	}
	resources.Tasks = dto.TasksToResponses(snapshot.Tasks)
	resources.Subjects = dto.SubjectsToResponses(snapshot.Subjects)
	resources.Events = dto.EventsToResponses(snapshot.Events)
	return resources
}

func truncateForLog(text string) string {
	const max = 500
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
