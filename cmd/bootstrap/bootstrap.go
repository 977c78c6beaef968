package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sagra/config"
	deliveryHttp "sagra/internal/delivery/http"
	"sagra/internal/delivery/http/handler"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/infrastructure/cache"
	"sagra/internal/infrastructure/database"
	"sagra/internal/infrastructure/spreadsheet"
	"sagra/internal/repository"
	"sagra/internal/service"
	"sagra/internal/usecase"
	"sagra/pkg/jwt"
	"sagra/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Usecases    *Usecases
}

// Usecases groups the application services shared by the HTTP API and the CLI.
// Auth is only set for the HTTP server since it needs the session store.
type Usecases struct {
	Patient   usecase.PatientUsecase
	Schedule  usecase.ScheduleUsecase
	Progress  usecase.ProgressUsecase
	Analytics usecase.AnalyticsUsecase
	Protocol  usecase.ProtocolUsecase
	Data      usecase.DataUsecase
	AuditLog  usecase.AuditLogUsecase
	Auth      usecase.AuthUsecase
}

// NewLogger configures the logrus logger
func NewLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.IsDevelopment() {
		return logger.Info
	}
	return logger.Warn
}

// Open connects to the database and builds every usecase that works without Redis.
// The CLI commands run on top of it.
func Open(cfg *config.Config, out io.Writer, dbLogLevel logger.LogLevel) (*App, error) {
	app := &App{Config: cfg}
	app.Log = NewLogger(cfg, out)

	db, err := database.Open(cfg.DB, app.Log, dbLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Infof("Database connected successfully (%s)", cfg.DB.Driver)

	app.Usecases = newUsecases(cfg, db, app.Log)
	return app, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app, err := Open(cfg, os.Stdout, gormLogLevel(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.JWT.Secret == "" {
		app.Close()
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	jwtService := jwt.NewJWTService(cfg.JWT)
	sessionService := service.NewRedisSessionService(redisClient, app.Log)

	authUsecase, err := usecase.NewAuthUsecase(
		app.DB, app.Log, cfg.Auth.Users, bcrypt.DefaultCost,
		jwtService, sessionService, service.NewAuditService(app.Log, repository.NewAuditLogRepository()),
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	app.Usecases.Auth = authUsecase

	app.Server = initializeServer(cfg, app.Log, app.Usecases, jwtService, sessionService)
	return app, nil
}

func newUsecases(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *Usecases {
	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	phaseRepo := repository.NewPhaseRepository()
	progressRepo := repository.NewProgressRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	reconciler := service.NewProgressReconciler(log, progressRepo)
	protocolLoader := spreadsheet.NewProtocolLoader(cfg.Storage.ProtocolsDir, log)

	return &Usecases{
		Patient:   usecase.NewPatientUsecase(db, log, patientRepo, auditService, time.Now),
		Schedule:  usecase.NewScheduleUsecase(db, log, patientRepo, phaseRepo, reconciler, time.Now),
		Progress:  usecase.NewProgressUsecase(db, log, patientRepo, phaseRepo, progressRepo, auditService, time.Now),
		Analytics: usecase.NewAnalyticsUsecase(db, log, patientRepo, progressRepo),
		Protocol:  usecase.NewProtocolUsecase(db, log, protocolLoader, patientRepo, time.Now),
		Data:      usecase.NewDataUsecase(db, log, cfg.Storage, patientRepo, progressRepo, auditService, time.Now),
		AuditLog:  usecase.NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, uc *Usecases, jwtService *jwt.JWTService, sessionService service.SessionService) *http.Server {
	customValidator := validator.NewValidator()

	handlers := deliveryHttp.Handlers{
		Auth:      handler.NewAuthHandler(uc.Auth, customValidator),
		Patient:   handler.NewPatientHandler(uc.Patient, customValidator),
		Schedule:  handler.NewScheduleHandler(uc.Schedule),
		Progress:  handler.NewProgressHandler(uc.Progress, customValidator),
		Analytics: handler.NewAnalyticsHandler(uc.Analytics),
		Protocol:  handler.NewProtocolHandler(uc.Protocol),
		Data:      handler.NewDataHandler(uc.Data, customValidator),
		AuditLog:  handler.NewAuditLogHandler(uc.AuditLog, customValidator),
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	router := deliveryHttp.NewRouter(log, handlers, authMiddleware, corsMiddleware)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until a shutdown signal or a server failure
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		app.Log.Errorf("Failed to start server: %v", serveErr)
	}

	app.shutdown()
	return serveErr
}

func (app *App) shutdown() {
	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis)
func (app *App) Close() {
	if app.DB != nil {
		database.Close(app.DB)
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis client: %+v", err)
		}
	}
}
