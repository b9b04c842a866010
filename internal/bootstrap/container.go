package bootstrap

import (
	"context"
	"log"
	"time"

	"pdf-hint-be/internal/config"
	"pdf-hint-be/internal/controller"
	"pdf-hint-be/internal/pkg/logger"
	"pdf-hint-be/internal/pkg/serverutils"
	"pdf-hint-be/internal/repository/memory"
	"pdf-hint-be/internal/service"
	"pdf-hint-be/internal/source"
	"pdf-hint-be/pkg/events"
	"pdf-hint-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	// Exposed for main.go to run the initial load and shut down cleanly
	KnowledgeService service.IKnowledgeService
	EventBus         *events.Bus
	Logger           logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	eventBus := events.NewBus()
	subscribeKnowledgeLogger(eventBus, sysLogger)

	// 3. Stores
	sessionStore := memory.NewSessionStore(
		cfg.Chat.MaxHistoryLength,
		time.Duration(cfg.Chat.SessionTimeoutMinutes)*time.Minute,
	)
	knowledgeStore := memory.NewKnowledgeStore()
	knowledgeSource := source.NewFilesystemSource(cfg.App.DataDir)

	// 4. LLM Provider
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	// 5. Services
	knowledgeService := service.NewKnowledgeService(knowledgeSource, knowledgeStore, eventBus, sysLogger)
	chatService := service.NewChatService(sessionStore, knowledgeStore, llmProvider, sysLogger, cfg.Chat, cfg.Ai)

	// 6. Controllers
	chatRateLimiter := serverutils.RateLimitMiddleware(cfg.Chat.ChatRateLimitPerMinute, time.Minute)
	chatController := controller.NewChatController(chatService, chatRateLimiter)
	knowledgeController := controller.NewKnowledgeController(knowledgeService, chatService)

	return &Container{
		ChatController:      chatController,
		KnowledgeController: knowledgeController,
		KnowledgeService:    knowledgeService,
		EventBus:            eventBus,
		Logger:              sysLogger,
	}
}

// subscribeKnowledgeLogger mirrors ingestion events into the structured log.
func subscribeKnowledgeLogger(bus *events.Bus, sysLogger logger.ILogger) {
	err := bus.Subscribe(context.Background(), func(ctx context.Context, event events.Event) error {
		switch event.EventType() {
		case events.TypeKnowledgeDocumentSkipped:
			sysLogger.Warn("KNOWLEDGE", "document skipped during ingestion", event.Payload())
		default:
			sysLogger.Info("KNOWLEDGE", event.EventType(), event.Payload())
		}
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Failed to subscribe knowledge event logger: %v", err)
	}
}
