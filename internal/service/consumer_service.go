package service

import (
	"context"
	"encoding/json"
	"strings"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/pkg/logger"
	"studytrack-be/internal/repository/specification"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the session title worker. Titles are generated off
// the request path so the first chat turn does not pay for a second model
// call.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		provider:   provider,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.GenerateTitleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "failed to unmarshal title job", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		cs.logger.Error("ConsumerService", "failed to load session for title job", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack() // retriable
		return
	}
	if session == nil {
		// Session deleted before the worker got to it.
		msg.Ack()
		return
	}

	prompt := "Write a title of at most five words for a conversation that starts with this message. " +
		"Return only the title, no quotes.\n\nMessage: " + payload.FirstMessage

	title, err := cs.provider.Generate(ctx, prompt, llm.WithTemperature(0.3), llm.WithMaxTokens(30))
	if err != nil {
		cs.logger.Warn("ConsumerService", "title generation failed", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		// The default title is fine; no retry.
		msg.Ack()
		return
	}

	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		msg.Ack()
		return
	}
	if len(title) > 100 {
		title = title[:100]
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		cs.logger.Error("ConsumerService", "failed to save session title", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
