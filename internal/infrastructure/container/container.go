package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/vanmates/vanmates-backend/internal/cache"
	"github.com/vanmates/vanmates-backend/internal/config"
	httpdelivery "github.com/vanmates/vanmates-backend/internal/delivery/http"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/handler"
	"github.com/vanmates/vanmates-backend/internal/delivery/http/middleware"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/database"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/gemini"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/push"
	"github.com/vanmates/vanmates-backend/internal/infrastructure/server"
	"github.com/vanmates/vanmates-backend/internal/repository/postgres"
	"github.com/vanmates/vanmates-backend/internal/usecase/chat"
	"github.com/vanmates/vanmates-backend/internal/usecase/discovery"
	"github.com/vanmates/vanmates-backend/internal/usecase/notification"
	"github.com/vanmates/vanmates-backend/internal/usecase/profile"
	"github.com/vanmates/vanmates-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg.Logging.Level)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis only powers discovery rotation; run without it when unavailable.
	var seenCache *cache.SeenCache
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, discovery rotation disabled", "error", err)
		redisClient = nil
	} else {
		seenCache = cache.NewSeenCache(redisClient)
	}

	// Push delivery falls back to logging when FCM is not configured.
	var sender notification.Sender
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := push.NewFCMSender(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize push sender: %w", err)
		}
		sender = fcm
	} else {
		logger.Warn("no FCM credentials configured, push payloads will be logged only")
		sender = &push.LogSender{Logger: logger}
	}

	// Gemini is optional; matches simply get no opener suggestions without it.
	var geminiClient *gemini.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("failed to initialize gemini client, openers disabled", "error", err)
			geminiClient = nil
		}
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	stopRepo := postgres.NewTravelStopRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	convRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Initialize use cases
	notifier := notification.NewService(profileRepo, sender, logger)
	profileUseCase := profile.NewUseCase(profileRepo, stopRepo)
	swipeUseCase := swipe.NewUseCase(swipeRepo, matchRepo, profileRepo, notifier, geminiClient, logger)
	chatUseCase := chat.NewUseCase(convRepo, messageRepo, profileRepo, notifier, logger)

	var seen discovery.SeenCache
	if seenCache != nil {
		seen = seenCache
	}
	discoveryUseCase := discovery.NewUseCase(profileRepo, stopRepo, seen, logger)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := httpdelivery.NewRouter(
		profileHandler,
		discoveryHandler,
		swipeHandler,
		chatHandler,
		authMiddleware,
	)

	ginRouter := router.Setup()

	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
