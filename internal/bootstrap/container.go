package bootstrap

import (
	"context"
	"log"
	"time"

	"studytrack-be/internal/config"
	"studytrack-be/internal/controller"
	"studytrack-be/internal/handler"
	"studytrack-be/internal/pkg/logger"
	"studytrack-be/internal/repository/implementation"
	"studytrack-be/internal/repository/unitofwork"
	"studytrack-be/internal/service"
	"studytrack-be/internal/websocket"
	"studytrack-be/pkg/intent"
	"studytrack-be/pkg/llm/factory"
	"studytrack-be/pkg/ratelimit"

	pktNats "studytrack-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	TaskController    controller.ITaskController
	SubjectController controller.ISubjectController
	EventController   controller.IEventController
	ChatController    controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Chat Pipeline
	rateWindow := time.Duration(cfg.Chat.RateWindowMs) * time.Millisecond
	var limiter ratelimit.Limiter
	if cfg.Chat.RateLimitDriver == "redis" {
		limiter = ratelimit.NewRedisLimiter(rdb, sysLogger)
		log.Println("[INFO] Using Rate Limiter: REDIS")
	} else {
		limiter = ratelimit.NewMemoryLimiter(rateWindow)
		log.Println("[INFO] Using Rate Limiter: MEMORY")
	}

	var executorPublisher intent.EventPublisher
	if natsPub != nil {
		executorPublisher = natsPub
	}
	executor := intent.NewExecutor(uowFactory, executorPublisher, sysLogger)

	publisherService := service.NewPublisherService(cfg.Chat.TitleTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.TitleTopicName,
		uowFactory,
		llmProvider,
		sysLogger,
	)

	// 6. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.TokenTTLHours)
	taskService := service.NewTaskService(uowFactory, natsPub, sysLogger)
	subjectService := service.NewSubjectService(uowFactory, natsPub, sysLogger)
	eventService := service.NewEventService(uowFactory)

	chatService := service.NewChatService(
		uowFactory,
		executor,
		llmProvider,
		limiter,
		publisherService,
		sysLogger,
		service.ChatOptions{
			RateLimit:        cfg.Chat.RateLimit,
			RateWindow:       rateWindow,
			HistoryWindow:    cfg.Chat.HistoryWindow,
			MaxMessageLength: cfg.Chat.MaxMessageLength,
			ModelTimeout:     time.Duration(cfg.Ai.TimeoutSeconds) * time.Second,
		},
	)

	// 7. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 8. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		TaskController:    controller.NewTaskController(taskService),
		SubjectController: controller.NewSubjectController(subjectService),
		EventController:   controller.NewEventController(eventService),
		ChatController:    controller.NewChatController(chatService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
