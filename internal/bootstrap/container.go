package bootstrap

import (
	"log"

	"support-chatbot-be/internal/config"
	"support-chatbot-be/internal/controller"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/pkg/mailer"
	"support-chatbot-be/internal/repository/filestore"
	"support-chatbot-be/internal/service"
	"support-chatbot-be/pkg/rag/prompt"

	pktNats "support-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController        controller.IChatController
	FeedbackController    controller.IFeedbackController
	ChatHistoryController controller.IChatHistoryController
	SessionController     controller.ISessionController
	HealthController      controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every component. db may be nil, leaving only the file backend.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	transcriptLogger := logger.NewIsolatedLogger(cfg.App.TranscriptLogPath)

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var sink service.EventSink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Retrieval and completion
	lex, err := LoadLexicon(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	retriever := NewRetriever(cfg, lex, sysLogger)
	generator, err := NewGenerator(cfg, lex, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Completion.Provider, cfg.Completion.Model)

	// 4. Persistence
	store := NewSessionStore(db, cfg, sysLogger)
	ledger := filestore.NewLedger(cfg.Storage.DataDir)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub, sink, sysLogger)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.EventTopic,
		transcriptLogger,
		emailService,
		cfg.SMTP.AlertTarget,
		sysLogger,
	)

	chatbotService := service.NewChatbotService(
		retriever,
		prompt.NewComposer(lex),
		generator,
		store,
		publisherService,
		sysLogger,
	)
	feedbackService := service.NewFeedbackService(store, publisherService, sysLogger)
	chatHistoryService := service.NewChatHistoryService(ledger, store, sysLogger)
	sessionService := service.NewSessionService(store)

	// 6. Controllers
	c.ChatController = controller.NewChatController(chatbotService, sysLogger)
	c.FeedbackController = controller.NewFeedbackController(feedbackService)
	c.ChatHistoryController = controller.NewChatHistoryController(chatHistoryService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.HealthController = controller.NewHealthController()

	return c
}

// Close releases the event bus and broker connections, then flushes the logger.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
