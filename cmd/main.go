package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/ndcacricket/registration-system/config"
	"github.com/ndcacricket/registration-system/credentials"
	"github.com/ndcacricket/registration-system/db"
	"github.com/ndcacricket/registration-system/handlers"
	"github.com/ndcacricket/registration-system/live"
	"github.com/ndcacricket/registration-system/repositories"
	api "github.com/ndcacricket/registration-system/routes"
	"github.com/ndcacricket/registration-system/services"
	"github.com/ndcacricket/registration-system/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов
	uploader, err := newUploader(cfg)
	if err != nil {
		logger.Error("failed to initialize file uploader", slog.Any("error", err))
		os.Exit(1)
	}
	uploadStore := storage.NewUploadStore(uploader)
	logger.Info("file uploader initialized", slog.String("driver", cfg.StorageDriver))

	verifier, err := credentials.ForScheme(cfg.AuthScheme)
	if err != nil {
		logger.Error("failed to select auth scheme", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация live-ленты
	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live feed hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	newsRepo := repositories.NewPostgresNewsRepository(dbConn)
	enrollmentRepo := repositories.NewPostgresEnrollmentRepository(dbConn)
	adminRepo := repositories.NewPostgresAdminRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	emailService := services.NewEmailService(cfg)
	tournamentService := services.NewTournamentService(tournamentRepo, uploadStore, logger)
	teamService := services.NewTeamService(teamRepo, uploadStore, emailService, verifier, hub, logger)
	playerService := services.NewPlayerService(playerRepo, uploadStore, logger)
	newsService := services.NewNewsService(newsRepo, uploadStore, hub, logger)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, hub)
	authService := services.NewAuthService(adminRepo, teamRepo, verifier, cfg.JWTSecretKey)
	dashboardService := services.NewDashboardService(tournamentRepo, teamRepo, playerRepo, newsRepo)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Team:       handlers.NewTeamHandler(teamService),
		Player:     handlers.NewPlayerHandler(playerService),
		News:       handlers.NewNewsHandler(newsService),
		Enrollment: handlers.NewEnrollmentHandler(enrollmentService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		Live:       handlers.NewLiveHandler(hub),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	uploadDir := cfg.UploadDir
	if cfg.StorageDriver != "local" {
		uploadDir = ""
	}
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecretKey,
		UploadDir:      uploadDir,
	})
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// newUploader selects the storage backend from STORAGE_DRIVER.
func newUploader(cfg *config.Config) (storage.FileUploader, error) {
	switch cfg.StorageDriver {
	case "local":
		return storage.NewLocalUploader(storage.LocalUploaderConfig{
			RootDir:       cfg.UploadDir,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	case "r2":
		return storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}
}
