package bootstrap

import (
	"context"
	"log"

	"auditpath-quiz-be/internal/config"
	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/controller"
	"auditpath-quiz-be/internal/handler"
	"auditpath-quiz-be/internal/pkg/logger"
	"auditpath-quiz-be/internal/pkg/mailer"
	"auditpath-quiz-be/internal/repository/implementation"
	"auditpath-quiz-be/internal/repository/memory"
	"auditpath-quiz-be/internal/repository/unitofwork"
	"auditpath-quiz-be/internal/service"
	"auditpath-quiz-be/internal/websocket"
	"auditpath-quiz-be/pkg/llm/factory"
	"auditpath-quiz-be/pkg/quizgen"

	pktNats "auditpath-quiz-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	CourseController     controller.ICourseController
	QuizController       controller.IQuizController
	GenerationController controller.IGenerationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory idempotency cache for generated questions
	questionCache := memory.NewQuestionCache()

	// 2.5 Infrastructure
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
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	generator := quizgen.NewGenerator(llmProvider, sysLogger)
	jobPublisher := service.NewPublisherService(constant.TopicGenerationRequested, pubSub)

	authService := service.NewAuthService(uowFactory, cfg, natsPub)
	courseService := service.NewCourseService(uowFactory)
	quizService := service.NewQuizService(
		uowFactory,
		cfg.Policy(),
		cfg.Quiz.DefaultQueueLimit,
		sysLogger,
		natsPub,
	)
	generationService := service.NewGenerationService(
		uowFactory,
		generator,
		questionCache,
		jobPublisher,
		pubSub,
		rdb,
		natsPub,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		constant.TopicGenerationRequested,
		generationService,
	)

	// Audit trail: every event on the NATS bus is persisted to system_logs.
	auditService := service.NewAuditService(implementation.NewSystemLogRepository(db))
	if natsSub != nil {
		err := natsSub.Subscribe(constant.SubjectQuizEvents, "quiz-audit", auditService.Record)
		if err != nil {
			log.Printf("[WARN] Failed to start audit consumer: %v", err)
		}
	}

	// 3.5 Progress bridge (watermill -> websocket hub + completion mail)
	progressHandler := handler.NewProgressHandler(pubSub, wsHub, uowFactory, emailService, wsLogger)
	if err := progressHandler.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start progress bridge: %v", err)
	}

	// 4. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		CourseController:     controller.NewCourseController(courseService),
		QuizController:       controller.NewQuizController(quizService),
		GenerationController: controller.NewGenerationController(generationService),

		ConsumerService: consumerService,

		ProgressHandler: progressHandler,
		WebSocketHub:    wsHub,
	}
}
