package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-chat-backend/internal/config"
	"social-chat-backend/internal/database"
	"social-chat-backend/internal/handlers"
	"social-chat-backend/internal/middleware"
	"social-chat-backend/internal/realtime"
	"social-chat-backend/internal/repository"
	"social-chat-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	pool, err := database.NewPool(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Database connection established")

	// Run migrations
	if cfg.Database.MigrationsPath != "" {
		migrator, err := database.NewMigrator(cfg.Database.URL(), cfg.Database.MigrationsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create migrator")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		migrator.Close()
		log.Info().Msg("Migrations applied")
	}

	// Initialize repositories
	db := repository.NewDB(pool)
	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Blob store for profile pictures
	var blobStore services.BlobStore
	if cfg.AWS.S3Bucket != "" {
		s3Store, err := services.NewS3BlobStore(
			cfg.AWS.Region,
			cfg.AWS.S3Bucket,
			cfg.AWS.AccessKey,
			cfg.AWS.SecretKey,
			cfg.AWS.Endpoint,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create blob store")
		}
		blobStore = s3Store
	}

	// Initialize services
	notificationService := services.NewNotificationService(notifRepo)
	userService := services.NewUserService(userRepo, blobStore, cfg.JWT.Secret)
	socialService := services.NewSocialService(requestRepo, friendshipRepo, userRepo, notificationService)
	messagingService := services.NewMessagingService(chatRepo, notificationService)

	// Realtime gateway
	hub := realtime.NewHub()
	coordinator := realtime.NewCoordinator(hub)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(socialService, coordinator)
	chatHandler := handlers.NewChatHandler(messagingService, coordinator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wsHandler := handlers.NewWebSocketHandler(hub, coordinator, userService, socialService, messagingService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", healthHandler(pool.Ping))

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			if cfg.Redis.Addr != "" {
				redisClient := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				limiter := middleware.NewRateLimiter(redisClient, 20, time.Minute, "auth")
				r.Use(limiter.Limit)
			}
			r.Post("/users", userHandler.Register)
			r.Post("/login", userHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService))

			r.Get("/friends", friendHandler.GetFriends)
			r.Post("/friends/request", friendHandler.SendRequest)
			r.Post("/friends/accept", friendHandler.AcceptRequest)
			r.Post("/friends/unfriend", friendHandler.Unfriend)
			r.Get("/users/discover", friendHandler.Discover)
			r.Get("/friend-requests/{userId}", friendHandler.ListRequests)

			r.Get("/chat/{userId}", chatHandler.GetConversation)
			r.Post("/chat/send", chatHandler.SendMessage)
			r.Put("/chat/{chatId}", chatHandler.EditMessage)
			r.Delete("/chat/{chatId}", chatHandler.DeleteMessage)
			r.Post("/chat/seen/{userId}", chatHandler.MarkSeen)

			r.Get("/notifications/{userId}", notificationHandler.List)
			r.Post("/notifications/read", notificationHandler.MarkRead)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// healthHandler reports liveness including database reachability.
func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "UP"
		code := http.StatusOK
		if err := ping(r.Context()); err != nil {
			status = "DEGRADED"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"status":%q,"timestamp":%q}`, status, time.Now().UTC().Format(time.RFC3339))
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
