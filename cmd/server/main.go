package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/skillchain/skillchain-backend/internal/ai"
	"github.com/skillchain/skillchain-backend/internal/config"
	"github.com/skillchain/skillchain-backend/internal/db"
	"github.com/skillchain/skillchain-backend/internal/goroutine"
	httpHandlers "github.com/skillchain/skillchain-backend/internal/http/handlers"
	httpRouter "github.com/skillchain/skillchain-backend/internal/http/router"
	"github.com/skillchain/skillchain-backend/internal/logger"
	"github.com/skillchain/skillchain-backend/internal/repository"
	"github.com/skillchain/skillchain-backend/internal/service"
	"github.com/skillchain/skillchain-backend/internal/storage"
	"github.com/skillchain/skillchain-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Redis для rate limiting (опционально).
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("main: невалидный REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIModel)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	swapRepo := repository.NewSwapRepository(dbConn)
	feedbackRepo := repository.NewFeedbackRepository(dbConn)
	badgeRepo := repository.NewBadgeRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	hub.SetUnreadCounter(notificationRepo)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo, feedbackRepo, swapRepo)
	directoryService := service.NewDirectoryService(userRepo)
	leaderboardService := service.NewLeaderboardService(userRepo)
	swapService := service.NewSwapService(swapRepo, userRepo, ws.NewSwapEventNotifier(hub))
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo)
	badgeService := service.NewBadgeService(badgeRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	hub.SetNotificationSaver(ws.NewNotificationServiceAdapter(notificationService))
	goroutine.SafeGo(hub.Run)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(profileService)
	directoryHandler := httpHandlers.NewDirectoryHandler(directoryService)
	leaderboardHandler := httpHandlers.NewLeaderboardHandler(leaderboardService)
	swapHandler := httpHandlers.NewSwapHandler(swapService)
	feedbackHandler := httpHandlers.NewFeedbackHandler(feedbackService)
	badgeHandler := httpHandlers.NewBadgeHandler(badgeService)
	matchHandler := httpHandlers.NewMatchHandler(aiClient)
	mediaHandler := httpHandlers.NewMediaHandler(profileService, photoStorage)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService, hub)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		profileHandler,
		directoryHandler,
		leaderboardHandler,
		swapHandler,
		feedbackHandler,
		badgeHandler,
		matchHandler,
		mediaHandler,
		notificationHandler,
		wsHandler,
		healthHandler,
		tokenManager,
		redisClient,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
