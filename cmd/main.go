package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/sports-portal/config"
	"github.com/Dosada05/sports-portal/db"
	_ "github.com/Dosada05/sports-portal/docs"
	"github.com/Dosada05/sports-portal/handlers"
	"github.com/Dosada05/sports-portal/livescore"
	"github.com/Dosada05/sports-portal/metrics"
	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/repositories"
	api "github.com/Dosada05/sports-portal/routes"
	"github.com/Dosada05/sports-portal/services"
	"github.com/Dosada05/sports-portal/session"
	"github.com/Dosada05/sports-portal/storage"
	_ "github.com/lib/pq"
)

// @title College Sports Portal API
// @version 1.0
// @description Расписание, матчи, команды, правила и регистрация капитанов и игроков.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Введите: Bearer <token>
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger) // handlers пишут ошибки 500 через slog по умолчанию
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

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

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema applied")
	}

	// Хранилище отозванных токенов
	var sessions session.Store
	if cfg.RedisURL != "" {
		sessions, err = session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("redis session store initialized")
	} else {
		sessions = session.NewMemoryStore()
		logger.Warn("REDIS_URL is not set, revoked tokens are kept in memory")
	}
	defer sessions.Close()

	// Загрузчик изображений (S3-совместимое хранилище)
	var uploader storage.FileUploader
	if cfg.S3.Enabled() {
		uploader, err = storage.NewS3Uploader(ctx, storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			BucketName:      cfg.S3.BucketName,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
			UsePathStyle:    cfg.S3.UsePathStyle,
		})
		if err != nil {
			logger.Error("failed to initialize S3 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("S3 uploader initialized", slog.String("bucket", cfg.S3.BucketName))
	} else {
		logger.Warn("S3 storage is not configured, image uploads are disabled")
	}

	appMetrics := metrics.New()

	notifier := services.NoopNotifier()
	if cfg.SMTP.Enabled() {
		_, domain, _ := strings.Cut(cfg.SMTP.From, "@")
		notifier = services.NewEmailService(services.EmailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			Domain:   domain,
		}, logger, appMetrics)
		logger.Info("email notifications enabled", slog.String("smtp_host", cfg.SMTP.Host))
	}

	// Инициализация WebSocket Hub
	wsHub := livescore.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	adminRepo := repositories.NewPostgresAdminRepository(dbConn)
	captainRepo := repositories.NewPostgresCaptainRepository(dbConn)
	departmentPlayerRepo := repositories.NewPostgresDepartmentPlayerRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	scheduleRepo := repositories.NewPostgresScheduleRepository(dbConn)
	ruleRepo := repositories.NewPostgresRuleRepository(dbConn)
	announcementRepo := repositories.NewPostgresAnnouncementRepository(dbConn)
	galleryRepo := repositories.NewPostgresGalleryRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	tokens := services.NewTokenManager(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := services.NewAuthService(adminRepo, captainRepo, playerRepo, tokens, sessions)
	adminService := services.NewAdminService(adminRepo)
	captainService := services.NewCaptainService(captainRepo, notifier, appMetrics, logger)
	departmentPlayerService := services.NewDepartmentPlayerService(departmentPlayerRepo, captainRepo, notifier, appMetrics, logger)
	playerService := services.NewPlayerService(playerRepo, notifier, appMetrics, logger)
	verificationService := services.NewVerificationService(captainRepo, departmentPlayerRepo, appMetrics)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, wsHub)
	scheduleService := services.NewScheduleService(scheduleRepo)
	ruleService := services.NewRuleService(ruleRepo)
	announcementService := services.NewAnnouncementService(announcementRepo)
	galleryService := services.NewGalleryService(galleryRepo, uploader, logger)
	dashboardService := services.NewDashboardService(captainRepo, departmentPlayerRepo, playerRepo, teamRepo, matchRepo, announcementRepo)
	logger.Info("Services initialized")

	if cfg.DefaultAdmin.Email != "" && cfg.DefaultAdmin.Password != "" {
		created, err := adminService.EnsureDefaultAdmin(ctx, services.AdminInput{
			Name:     cfg.DefaultAdmin.Name,
			Email:    cfg.DefaultAdmin.Email,
			Password: cfg.DefaultAdmin.Password,
		})
		if err != nil {
			logger.Error("failed to create default admin", slog.Any("error", err))
			os.Exit(1)
		}
		if created {
			logger.Info("default admin created", slog.String("email", cfg.DefaultAdmin.Email))
		}
	}

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:             handlers.NewAuthHandler(authService, adminService, captainService, playerService),
		Captain:          handlers.NewCaptainHandler(captainService, logger),
		DepartmentPlayer: handlers.NewDepartmentPlayerHandler(departmentPlayerService, logger),
		Player:           handlers.NewPlayerHandler(playerService),
		Team:             handlers.NewTeamHandler(teamService),
		Match:            handlers.NewMatchHandler(matchService),
		Schedule:         handlers.NewScheduleHandler(scheduleService),
		Rule:             handlers.NewRuleHandler(ruleService),
		Announcement:     handlers.NewAnnouncementHandler(announcementService),
		Gallery:          handlers.NewGalleryHandler(galleryService),
		Verification:     handlers.NewVerificationHandler(verificationService),
		Dashboard:        handlers.NewDashboardHandler(dashboardService),
		WebSocket:        handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := api.SetupRoutes(h, api.Options{
		Logger:         logger,
		Authenticator:  authService,
		Metrics:        appMetrics,
		AuthLimiter:    middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	logger.Info("Routes configured")

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
		}
		logger.Info("server stopped gracefully")
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
		}
		logger.Info("server shutdown complete")
	}

	// Останавливаем hub после HTTP-сервера, чтобы закрыть websocket-клиентов
	stop()
	logger.Info("application exited")
}
