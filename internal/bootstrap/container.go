package bootstrap

import (
	"context"
	"log"

	"student-analyzer-be/internal/config"
	"student-analyzer-be/internal/controller"
	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/internal/pkg/mailer"
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/internal/repository/memory"
	"student-analyzer-be/internal/repository/unitofwork"
	"student-analyzer-be/internal/service"
	"student-analyzer-be/pkg/llm/factory"
	"student-analyzer-be/pkg/media/dalle"
	"student-analyzer-be/pkg/media/synthesia"
	"student-analyzer-be/pkg/prompt"
	"student-analyzer-be/pkg/state"
	"student-analyzer-be/pkg/translate"

	pktNats "student-analyzer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	DocumentController controller.IDocumentController
	UsageController    controller.IUsageController

	// Route guard shared by the controllers
	JwtMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
		sysLogger,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS (optional)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis (optional translation cache)
	var translationCache translate.Cache
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (translation cache disabled)", err)
		} else {
			translationCache = translate.NewRedisCache(rdb, cfg.App.TranslationTTL)
		}
	}

	// 4. Content generation
	apiKey := cfg.Keys.GoogleGemini
	baseURL := cfg.Ai.LLMBaseURL
	switch cfg.Ai.LLMProvider {
	case "openai":
		apiKey = cfg.Keys.OpenAI
	case "ollama":
		baseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(context.Background(), factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  baseURL,
		APIKey:   apiKey,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	prompts := prompt.NewBuilder(cfg.Ai.PromptMaxChars)
	translator := translate.NewTranslator(llmProvider, prompts, translationCache, sysLogger)

	// Video generation needs both media keys
	var (
		thumbnails service.IThumbnailGenerator
		videos     service.IVideoClient
	)
	if cfg.Keys.OpenAI != "" {
		thumbnails = dalle.NewGenerator(cfg.Keys.OpenAI, "", cfg.Media.ImageModel)
	}
	if cfg.Keys.Synthesia != "" {
		client := synthesia.NewClient(cfg.Keys.Synthesia, cfg.Media.SynthesiaBaseURL)
		client.PollInterval = cfg.Media.PollInterval
		client.MaxPolls = cfg.Media.MaxPolls
		videos = client
	}

	// In-memory analysis sessions
	sessionRepo := memory.NewSessionRepository(cfg.App.SessionTTL)
	stateManager := state.NewManager(sysLogger)

	// 5. Services
	usageService := service.NewUsageService(uowFactory, sysLogger)
	publisherService := service.NewPublisherService(cfg.App.UsageTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.UsageTopic,
		usageService,
		sysLogger,
	)

	authService := service.NewAuthService(
		uowFactory,
		sessionRepo,
		emailService,
		natsPub,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		sysLogger,
	)
	documentService := service.NewDocumentService(
		sessionRepo,
		stateManager,
		llmProvider,
		prompts,
		translator,
		thumbnails,
		videos,
		publisherService,
		natsPub,
		service.DocumentOptions{
			VideoTestMode:  cfg.Media.SynthesiaTestMode,
			ScriptMaxWords: cfg.Media.ScriptMaxWords,
		},
		sysLogger,
	)

	return &Container{
		AuthController:     controller.NewAuthController(authService),
		DocumentController: controller.NewDocumentController(documentService),
		UsageController:    controller.NewUsageController(usageService),
		JwtMiddleware:      serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
		closers: []func(){
			natsPub.Close,
			func() { _ = pubSub.Close() },
			func() { _ = sysLogger.Sync() },
		},
	}
}

// Close releases the event buses and flushes the logger
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}
