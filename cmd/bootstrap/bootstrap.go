package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management/config"
	deliveryHttp "hospital-management/internal/delivery/http"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/infrastructure/cache"
	"hospital-management/internal/infrastructure/database"
	"hospital-management/internal/repository"
	"hospital-management/internal/seeder"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	log := NewLogger(cfg)
	app := &App{Config: cfg, Log: log}

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	location, err := cfg.App.Location()
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           NewHandler(cfg, log, db, redisClient, location),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// NewLogger configures a logrus logger from the log settings
func NewLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.TimeZone, cfg.App.Env == "development")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewHandler wires every layer behind the HTTP router
func NewHandler(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, location *time.Location) http.Handler {
	jwtService := jwt.NewJWTService(cfg.Session)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	dashboardRepo := repository.NewDashboardRepository(db)

	// Services
	sessionService := service.NewSessionService(log, jwtService, redisClient)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, customValidator, userRepo, doctorRepo, patientRepo, sessionService, auditService, jwtService)
	dashboardUsecase := usecase.NewDashboardUsecase(log, dashboardRepo, location, time.Now)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, doctorRepo)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, patientRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(db, sessionService, userRepo, cfg.Session)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, authMiddleware)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase)
	patientHandler := handler.NewPatientHandler(patientProfileUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	router := deliveryHttp.NewRouter(
		authHandler,
		dashboardHandler,
		doctorHandler,
		patientHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	return router.Handler(loggingMiddleware)
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
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
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

// Seed populates the database with demo data
func Seed(ctx context.Context, cfg *config.Config, opts seeder.Options) (*seeder.Result, error) {
	log := NewLogger(cfg)

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	s := seeder.New(
		db,
		log,
		repository.NewRoleRepository(),
		repository.NewUserRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewAppointmentRepository(),
		repository.NewBillRepository(),
	)
	return s.Run(ctx, opts)
}

// Migrate runs the embedded migrations in the given direction
func Migrate(cfg *config.Config, direction string) error {
	log := NewLogger(cfg)

	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch direction {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}
