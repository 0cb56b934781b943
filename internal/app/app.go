package app

import (
	"context"
	"errors"
	"fmt"

	"mediconnect_backend/database"
	"mediconnect_backend/internal/auth"
	"mediconnect_backend/internal/cache"
	"mediconnect_backend/internal/config"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/handlers"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/middleware"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/routes"
	"mediconnect_backend/internal/services"
	"mediconnect_backend/internal/validator"
	"mediconnect_backend/internal/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func Run() {
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(cfg, gormDB)

	tokenWorker := workers.NewTokenWorker(repositories.NewRefreshTokenRepository(gormDB))
	tokenWorker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin
// engine. Split out from Run so tests can build a router against
// their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if cacheClient == nil {
		logger.Warn("redis not configured, job board caching disabled")
	}

	emailProvider := newEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	trainingRepo := repositories.NewTrainingRepository(gormDB)

	authService := services.NewAuthService(userRepo, refreshTokenRepo)
	profileService := services.NewProfileService(profileRepo, userRepo)
	verificationService := services.NewVerificationService(profileRepo, userRepo, emailProvider)
	jobService := services.NewJobService(jobRepo, profileRepo, cacheClient)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, profileRepo, trainingRepo, userRepo, emailProvider)
	trainingService := services.NewTrainingService(trainingRepo, profileRepo, userRepo, emailProvider)

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, authService),
		ProfileHandler:  handlers.NewProfileHandler(baseHandler, profileService),
		JobHandler:      handlers.NewJobHandler(baseHandler, jobService, applicationService),
		TrainingHandler: handlers.NewTrainingHandler(baseHandler, trainingService),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, verificationService, jobService),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, using mock email provider")
		return email.NewMockProvider()
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("admin credentials not configured, skipping admin seeding")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("created first admin user", "email", adminEmail)
	return nil
}
