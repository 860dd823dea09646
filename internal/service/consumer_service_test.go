package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/entity"
	"studytrack-be/internal/repository/inmemory"
	"studytrack-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testTitleTopic = "GENERATE_SESSION_TITLE"

func publishTitleJob(t *testing.T, pubSub *gochannel.GoChannel, job dto.GenerateTitleMessage) {
	t.Helper()
	payload, err := json.Marshal(job)
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(testTitleTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func TestConsumerGeneratesSessionTitle(t *testing.T) {
	store := inmemory.NewStore()
	factory := inmemory.NewFactory(store)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "New conversation",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), session))

	provider := &mockProvider{outputs: []string{`"Chapter 4 Reading Plan"`}}
	consumer := NewConsumerService(pubSub, testTitleTopic, factory, provider, testLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publishTitleJob(t, pubSub, dto.GenerateTitleMessage{
		SessionId:    session.Id,
		FirstMessage: "help me plan my chapter 4 reading",
	})

	require.Eventually(t, func() bool {
		got, err := uow.ChatSessionRepository().FindOne(context.Background(), specification.ByID{ID: session.Id})
		// Quotes around the model output are stripped before saving.
		return err == nil && got != nil && got.Title == "Chapter 4 Reading Plan"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConsumerKeepsDefaultTitleOnModelFailure(t *testing.T) {
	store := inmemory.NewStore()
	factory := inmemory.NewFactory(store)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "New conversation",
		Status:    entity.SessionStatusActive,
		CreatedAt: time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), session))

	// No outputs queued, so Generate fails; the message must still be acked
	// and the default title kept.
	provider := &mockProvider{}
	consumer := NewConsumerService(pubSub, testTitleTopic, factory, provider, testLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publishTitleJob(t, pubSub, dto.GenerateTitleMessage{
		SessionId:    session.Id,
		FirstMessage: "hello",
	})

	time.Sleep(200 * time.Millisecond)
	got, err := uow.ChatSessionRepository().FindOne(context.Background(), specification.ByID{ID: session.Id})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "New conversation", got.Title)
}

func TestConsumerIgnoresDeletedSessions(t *testing.T) {
	store := inmemory.NewStore()
	factory := inmemory.NewFactory(store)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	provider := &mockProvider{outputs: []string{"Never Used"}}
	consumer := NewConsumerService(pubSub, testTitleTopic, factory, provider, testLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publishTitleJob(t, pubSub, dto.GenerateTitleMessage{
		SessionId:    uuid.New(),
		FirstMessage: "hello",
	})

	time.Sleep(200 * time.Millisecond)
	require.Zero(t, provider.calls)
}
