package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-records-api/config"
	deliveryHttp "health-records-api/internal/delivery/http"
	"health-records-api/internal/delivery/http/handler"
	"health-records-api/internal/delivery/http/middleware"
	"health-records-api/internal/infrastructure/cache"
	"health-records-api/internal/infrastructure/database"
	"health-records-api/internal/infrastructure/storage"
	"health-records-api/internal/repository"
	"health-records-api/internal/service"
	"health-records-api/internal/usecase"
	"health-records-api/pkg/jwt"
	"health-records-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Storage     storage.FileStorage
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	log, err := SetupLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}
	app.Log = log

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize file storage
	fileStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.Storage = fileStorage
	log.WithField("driver", cfg.Storage.Driver).Info("File storage ready")

	app.Server = initializeServer(cfg, log, db, redisClient, fileStorage)

	return app, nil
}

// SetupLogger configures the shared logrus logger
func SetupLogger(level string) (*logrus.Logger, error) {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, fileStorage storage.FileStorage) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	clinicianRepo := repository.NewClinicianRepository()
	documentRepo := repository.NewDocumentRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	tokenRepo := repository.NewTokenRepository(redisClient)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	accessService := service.NewAccessService(db, log, patientRepo, clinicianRepo)
	identityService := service.NewIdentityService(db, log, userRepo, tokenRepo, jwtService)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientRepo, clinicianRepo, tokenRepo, auditService, jwtService)
	patientUsecase := usecase.NewPatientUsecase(db, log, userRepo, patientRepo, accessService, auditService)
	clinicianUsecase := usecase.NewClinicianUsecase(db, log, userRepo, clinicianRepo, accessService, auditService)
	documentUsecase := usecase.NewDocumentUsecase(db, log, documentRepo, patientRepo, accessService, auditService, fileStorage, cfg.Upload.MaxSize)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	clinicianHandler := handler.NewClinicianHandler(clinicianUsecase, customValidator)
	documentHandler := handler.NewDocumentHandler(documentUsecase, log, cfg.Upload.MaxSize)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(identityService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		patientHandler,
		clinicianHandler,
		documentHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		accessService,
		deliveryHttp.RateLimit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window},
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until it has shut down.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
