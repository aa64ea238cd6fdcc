package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/bookswipe/bookswipe-server/internal/catalog"
	"github.com/bookswipe/bookswipe-server/internal/config"
	"github.com/bookswipe/bookswipe-server/internal/delivery/http"
	"github.com/bookswipe/bookswipe-server/internal/delivery/http/handler"
	"github.com/bookswipe/bookswipe-server/internal/delivery/http/middleware"
	"github.com/bookswipe/bookswipe-server/internal/infrastructure/database"
	"github.com/bookswipe/bookswipe-server/internal/infrastructure/server"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/realtime"
	"github.com/bookswipe/bookswipe-server/internal/repository/postgres"
	"github.com/bookswipe/bookswipe-server/internal/usecase/auth"
	"github.com/bookswipe/bookswipe-server/internal/usecase/chat"
	"github.com/bookswipe/bookswipe-server/internal/usecase/community"
	"github.com/bookswipe/bookswipe-server/internal/usecase/deck"
	"github.com/bookswipe/bookswipe-server/internal/usecase/match"
	"github.com/bookswipe/bookswipe-server/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Bus    realtime.Bus

	// cancel stops background workers (session reaper) on Close.
	cancel context.CancelFunc
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	bookRepo := postgres.NewBookRepository(db)
	preferenceRepo := postgres.NewPreferenceRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Seed the curated catalog. A failed sync is logged and tolerated:
	// the deck degrades to whatever books are already present.
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSync()
	if inserted, err := catalog.Sync(syncCtx, bookRepo, log); err != nil {
		log.Warn("catalog sync failed", "error", err)
	} else if inserted > 0 {
		log.Info("catalog synced", "inserted", inserted)
	}

	// Initialize matching
	detector := match.NewDetector(preferenceRepo, log)
	scorer := match.NewScorer(preferenceRepo)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		sessionRepo,
		cfg.JWT.Secret,
		cfg.JWT.ExpiryDays,
		log,
	)

	profileUseCase := profile.NewProfileUseCase(profileRepo)

	deckManager := deck.NewManager(
		bookRepo,
		preferenceRepo,
		detector,
		cfg.Deck,
		log,
	)

	aggregator := community.NewAggregator(scorer, profileRepo, log)

	bus := realtime.NewRedisBus(redisClient, cfg.Chat.Channel, log)
	feed := realtime.NewFeed(bus, messageRepo, cfg.Chat.PollInterval, log)

	chatUseCase := chat.NewChatUseCase(messageRepo, bus, feed, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	deckHandler := handler.NewDeckHandler(deckManager, cfg.Deck)
	communityHandler := handler.NewCommunityHandler(aggregator)
	chatHandler := handler.NewChatHandler(chatUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		deckHandler,
		communityHandler,
		chatHandler,
		authMiddleware,
		cfg.CORS.AllowedOrigin,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	// Background workers
	workerCtx, cancel := context.WithCancel(context.Background())
	deckManager.StartReaper(workerCtx, cfg.Deck.SessionTTL/2)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Bus:    bus,
		cancel: cancel,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.cancel != nil {
		c.cancel()
	}

	if c.Bus != nil {
		if err := c.Bus.Close(); err != nil {
			c.Log.Warn("error closing realtime bus", "error", err)
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
