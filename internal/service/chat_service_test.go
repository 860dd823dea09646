package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"studytrack-be/internal/constant"
	"studytrack-be/internal/dto"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/inmemory"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/pkg/intent"
	"studytrack-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

// mockProvider replays canned model outputs in order.
type mockProvider struct {
	outputs []string
	err     error
	calls   int
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.calls >= len(m.outputs) {
		return "", errors.New("mockProvider: no output queued")
	}
	out := m.outputs[m.calls]
	m.calls++
	return out, nil
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.Chat(ctx, nil)
}

type stubLimiter struct {
	allow bool
}

func (l stubLimiter) Allow(key string, limit int, window time.Duration) bool {
	return l.allow
}

type recordingTitlePublisher struct {
	payloads [][]byte
}

func (p *recordingTitlePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type chatFixture struct {
	service IChatService
	store   *inmemory.Store
	factory unitofwork.RepositoryFactory
	titles  *recordingTitlePublisher
}

func newChatFixture(provider llm.LLMProvider, limiter stubLimiter) *chatFixture {
	store := inmemory.NewStore()
	factory := inmemory.NewFactory(store)
	executor := intent.NewExecutor(factory, nil, testLogger{})
	titles := &recordingTitlePublisher{}

	svc := NewChatService(factory, executor, provider, limiter, titles, testLogger{}, ChatOptions{
		RateLimit:        20,
		RateWindow:       time.Minute,
		HistoryWindow:    10,
		MaxMessageLength: 1000,
		ModelTimeout:     5 * time.Second,
	})

	return &chatFixture{service: svc, store: store, factory: factory, titles: titles}
}

func (f *chatFixture) messages(t *testing.T, userId, sessionId uuid.UUID) []dto.GetChatHistoryResponse {
	t.Helper()
	history, err := f.service.GetChatHistory(context.Background(), userId, sessionId)
	require.NoError(t, err)
	return history
}

func TestSendChatCreateTaskTurn(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		`{"intent": "create_task", "payload": {"title": "Read chapter 4", "priority": "High"}, "reply": "Added \"Read chapter 4\" to your tasks."}`,
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})
	userId := uuid.New()

	res, err := fixture.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message: "add a task to read chapter 4, high priority",
	})
	require.NoError(t, err)

	assert.Equal(t, "create_task", res.Intent)
	assert.Equal(t, `Added "Read chapter 4" to your tasks.`, res.Reply)
	require.Len(t, res.Resources.Tasks, 1)
	assert.Equal(t, "Read chapter 4", res.Resources.Tasks[0].Title)
	assert.Equal(t, "pending", res.Resources.Tasks[0].Status)
	assert.Equal(t, "High", res.Resources.Tasks[0].Priority)

	history := fixture.messages(t, userId, res.SessionId)
	require.Len(t, history, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, history[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, history[1].Role)
	assert.Equal(t, "create_task", history[1].Intent)

	// A new session enqueues exactly one title generation request.
	require.Len(t, fixture.titles.payloads, 1)
	var msg dto.GenerateTitleMessage
	require.NoError(t, json.Unmarshal(fixture.titles.payloads[0], &msg))
	assert.Equal(t, res.SessionId, msg.SessionId)
	assert.Equal(t, "add a task to read chapter 4, high priority", msg.FirstMessage)
}

func TestSendChatFencedOutputIsNormalized(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		"```json\n{\"intent\": \"create_subject\", \"payload\": {\"name\": \"Biology\"}, \"reply\": \"Added Biology.\"}\n```",
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})

	res, err := fixture.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "add a biology subject",
	})
	require.NoError(t, err)

	assert.Equal(t, "create_subject", res.Intent)
	require.Len(t, res.Resources.Subjects, 1)
	assert.Equal(t, "Biology", res.Resources.Subjects[0].Name)
}

func TestSendChatMalformedOutputFallsBack(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		"I'm sorry, I can't produce JSON right now.",
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})
	userId := uuid.New()

	res, err := fixture.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message: "do something",
	})
	require.NoError(t, err)

	assert.Equal(t, "none", res.Intent)
	assert.Nil(t, res.Payload)
	assert.Equal(t, constant.ChatFallbackReply, res.Reply)
	assert.Empty(t, res.Resources.Tasks)

	// Both the user's message and the fallback turn are on record.
	history := fixture.messages(t, userId, res.SessionId)
	require.Len(t, history, 2)
	assert.Equal(t, "do something", history[0].Content)
	assert.Equal(t, constant.ChatFallbackReply, history[1].Content)
}

func TestSendChatModelErrorFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("connection refused")}
	fixture := newChatFixture(provider, stubLimiter{allow: true})

	res, err := fixture.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "none", res.Intent)
	assert.Equal(t, constant.ChatFallbackReply, res.Reply)
}

func TestSendChatInvalidCandidateKeepsItsReply(t *testing.T) {
	// Valid reply, but the payload breaks the create_task contract.
	provider := &mockProvider{outputs: []string{
		`{"intent": "create_task", "payload": {}, "reply": "I want to add a task but I'm missing the title."}`,
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})

	res, err := fixture.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "add a task",
	})
	require.NoError(t, err)

	assert.Equal(t, "none", res.Intent)
	assert.Equal(t, "I want to add a task but I'm missing the title.", res.Reply)
	assert.Empty(t, res.Resources.Tasks)
}

func TestSendChatRateLimited(t *testing.T) {
	provider := &mockProvider{outputs: []string{`{"intent": "none", "payload": {}, "reply": "hi"}`}}
	fixture := newChatFixture(provider, stubLimiter{allow: false})
	userId := uuid.New()

	_, err := fixture.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message: "hello",
	})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusTooManyRequests, appErr.Code)

	// A denied turn leaves no trace: no session, no messages, no model call.
	sessions, err := fixture.service.GetAllSessions(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Zero(t, provider.calls)
}

func TestSendChatEmptyMessageRejected(t *testing.T) {
	fixture := newChatFixture(&mockProvider{}, stubLimiter{allow: true})

	_, err := fixture.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: "   ",
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
}

func TestSendChatOverlongMessageRejected(t *testing.T) {
	fixture := newChatFixture(&mockProvider{}, stubLimiter{allow: true})

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}

	_, err := fixture.service.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		Message: string(long),
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Code)
}

func TestSendChatClosedSessionConflicts(t *testing.T) {
	fixture := newChatFixture(&mockProvider{}, stubLimiter{allow: true})
	userId := uuid.New()

	closed := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Old thread",
		Status:    entity.SessionStatusCompleted,
		CreatedAt: time.Now(),
	}
	uow := fixture.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), closed))

	_, err := fixture.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message:   "hello again",
		SessionId: &closed.Id,
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusConflict, appErr.Code)
}

func TestSendChatForeignSessionGetsFreshOne(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		`{"intent": "none", "payload": {}, "reply": "Hello!"}`,
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})

	ownerA := uuid.New()
	ownerB := uuid.New()

	sessionA := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    ownerA,
		Title:     "A's thread",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now(),
	}
	uow := fixture.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), sessionA))

	res, err := fixture.service.SendChat(context.Background(), ownerB, &dto.SendChatRequest{
		Message:   "hi",
		SessionId: &sessionA.Id,
	})
	require.NoError(t, err)

	// B lands in a brand-new session, not A's.
	assert.NotEqual(t, sessionA.Id, res.SessionId)

	historyA := fixture.messages(t, ownerA, sessionA.Id)
	assert.Empty(t, historyA)
}

func TestGetChatHistoryUnknownSession(t *testing.T) {
	fixture := newChatFixture(&mockProvider{}, stubLimiter{allow: true})

	_, err := fixture.service.GetChatHistory(context.Background(), uuid.New(), uuid.New())
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		`{"intent": "none", "payload": {}, "reply": "Hello!"}`,
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})
	userId := uuid.New()

	res, err := fixture.service.SendChat(context.Background(), userId, &dto.SendChatRequest{
		Message: "hi",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.DeleteSession(context.Background(), userId, res.SessionId))

	_, err = fixture.service.GetChatHistory(context.Background(), userId, res.SessionId)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)

	sessions, err := fixture.service.GetAllSessions(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteSessionForeignOwner(t *testing.T) {
	provider := &mockProvider{outputs: []string{
		`{"intent": "none", "payload": {}, "reply": "Hello!"}`,
	}}
	fixture := newChatFixture(provider, stubLimiter{allow: true})
	owner := uuid.New()

	res, err := fixture.service.SendChat(context.Background(), owner, &dto.SendChatRequest{
		Message: "hi",
	})
	require.NoError(t, err)

	err = fixture.service.DeleteSession(context.Background(), uuid.New(), res.SessionId)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusNotFound, appErr.Code)
}
