// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/directiva-mx/admin-api/internal/config"
	"github.com/directiva-mx/admin-api/internal/db"
	authHandler "github.com/directiva-mx/admin-api/internal/handlers/auth"
	cacheHandler "github.com/directiva-mx/admin-api/internal/handlers/cache"
	emailHandler "github.com/directiva-mx/admin-api/internal/handlers/email"
	institutionHandler "github.com/directiva-mx/admin-api/internal/handlers/institution"
	mentorHandler "github.com/directiva-mx/admin-api/internal/handlers/mentor"
	miniappHandler "github.com/directiva-mx/admin-api/internal/handlers/miniapp"
	notifyHandler "github.com/directiva-mx/admin-api/internal/handlers/notification"
	statsHandler "github.com/directiva-mx/admin-api/internal/handlers/stats"
	userHandler "github.com/directiva-mx/admin-api/internal/handlers/user"
	"github.com/directiva-mx/admin-api/internal/middleware"
	"github.com/directiva-mx/admin-api/internal/pkg/httpx"
	"github.com/directiva-mx/admin-api/internal/pkg/token"
	"github.com/directiva-mx/admin-api/internal/repository/postgres"
	"github.com/directiva-mx/admin-api/internal/service/audience"
	authUsecase "github.com/directiva-mx/admin-api/internal/service/auth"
	cachesvc "github.com/directiva-mx/admin-api/internal/service/cache"
	emailsvc "github.com/directiva-mx/admin-api/internal/service/email"
	institutionsvc "github.com/directiva-mx/admin-api/internal/service/institution"
	mentorsvc "github.com/directiva-mx/admin-api/internal/service/mentor"
	miniappsvc "github.com/directiva-mx/admin-api/internal/service/miniapp"
	"github.com/directiva-mx/admin-api/internal/service/notify"
	statssvc "github.com/directiva-mx/admin-api/internal/service/stats"
	usersvc "github.com/directiva-mx/admin-api/internal/service/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Calls to the main application's cache endpoint get a longer leash than the
// email provider; cache invalidation over there can take a while under load.
const (
	emailTimeout   = httpx.DefaultTimeout
	mainAppTimeout = 60 * time.Second
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg config.AppConfig) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	var logger *zap.Logger
	var err error
	if s.cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	// The dashboard cache degrades gracefully; a dead redis is a warning,
	// not a startup failure.
	var statsCache statssvc.Cache
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		logger.Warn("redis unavailable, dashboard stats uncached", zap.Error(err))
	} else {
		statsCache = statssvc.NewRedisCache(redisClient)
	}

	// ----- Token manager -----
	tokens, err := token.NewManager(s.cfg.JWTSecret, "directiva-admin", s.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	// ----- Outbound HTTP clients -----
	emailClient := httpx.New(emailTimeout, logger)
	mainAppClient := httpx.New(mainAppTimeout, logger)

	// ----- Repositories -----
	adminRepo := postgres.NewAdminRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	mentorRepo := postgres.NewMentorRepository(pool)
	institutionRepo := postgres.NewInstitutionRepository(pool)
	miniAppRepo := postgres.NewMiniAppRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// ----- Services -----
	authService := authUsecase.NewService(adminRepo, tokens, logger)
	emailService := emailsvc.NewService(emailClient, s.cfg.ResendBaseURL, s.cfg.ResendAPIKey, s.cfg.FromEmail, s.cfg.FromName, logger)
	resolver := audience.NewResolver(userRepo, mentorRepo)
	dispatcher := notify.NewDispatcher(notificationRepo, resolver, emailService, s.cfg.MentorDefaultNotificationType, logger)
	cacheService := cachesvc.NewService(mainAppClient, s.cfg.MainAppURL, s.cfg.MainAppAPIToken, logger)
	statsService := statssvc.NewService(statsRepo, statsCache, logger)
	userService := usersvc.NewService(userRepo, statsService, logger)
	mentorService := mentorsvc.NewService(mentorRepo, statsService, logger)
	institutionService := institutionsvc.NewService(institutionRepo, statsService, logger)
	miniAppService := miniappsvc.NewService(miniAppRepo, statsService, logger)

	// ----- Bootstrap admin -----
	if err := s.bootstrapAdmin(ctx, authService); err != nil {
		// Startup continues; login via existing rows still works.
		logger.Error("failed to bootstrap admin", zap.Error(err))
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		Auth:         authHandler.NewHandler(authService, logger),
		Notification: notifyHandler.NewHandler(dispatcher, logger),
		Email:        emailHandler.NewHandler(emailService, logger),
		Cache:        cacheHandler.NewHandler(cacheService, logger),
		User:         userHandler.NewHandler(userService, logger),
		Mentor:       mentorHandler.NewHandler(mentorService, logger),
		Institution:  institutionHandler.NewHandler(institutionService, logger),
		MiniApp:      miniappHandler.NewHandler(miniAppService, logger),
		Stats:        statsHandler.NewHandler(statsService, logger),
		RequireAdmin: middleware.AuthMiddleware(authService),
	}
	SetupRouter(s.engine, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))
	return s.engine.Run(s.cfg.HTTPAddr)
}

func (s *Server) bootstrapAdmin(ctx context.Context, auth *authUsecase.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	username := s.cfg.AdminBootstrapUsername
	password := s.cfg.AdminBootstrapPassword
	email := s.cfg.AdminBootstrapEmail

	if s.cfg.IsProduction() {
		// In production the admin rows are managed in the store; no seeding.
		return nil
	}
	if username == "" {
		username = "admin"
		s.logger.Warn("ADMIN_BOOTSTRAP_USERNAME not set, using default", zap.String("username", username))
	}
	if password == "" {
		password = "cambiar-en-produccion"
		s.logger.Warn("ADMIN_BOOTSTRAP_PASSWORD not set, using default password")
	}
	if email == "" {
		email = "admin@directiva.mx"
	}
	if len(password) < 8 {
		return fmt.Errorf("bootstrap admin password must be at least 8 characters")
	}

	return auth.EnsureAdminExists(ctx, username, email, password)
}
