package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/restaurantapp/backend/docs"
	authMiddleware "github.com/restaurantapp/backend/internal/auth/middleware"
	authService "github.com/restaurantapp/backend/internal/auth/service"
	"github.com/restaurantapp/backend/internal/config"
	"github.com/restaurantapp/backend/internal/geocode"
	"github.com/restaurantapp/backend/internal/handlers"
	"github.com/restaurantapp/backend/internal/logger"
	loggerMiddleware "github.com/restaurantapp/backend/internal/logger/middleware"
	"github.com/restaurantapp/backend/internal/mailer"
	"github.com/restaurantapp/backend/internal/middlewares"
	"github.com/restaurantapp/backend/internal/repositories"
	"github.com/restaurantapp/backend/internal/services"
	"github.com/restaurantapp/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title RestaurantApp API
// @version 1.0
// @description API for restaurant discovery: accounts, catalog ingestion and comment moderation

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting RestaurantApp API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.EmailTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	restaurantRepo := repositories.NewRestaurantRepository(db, logger.Logger)
	commentRepo := repositories.NewCommentRepository(db, logger.Logger)

	// Initialize adapters
	geocoder := geocode.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.CacheTTL, logger.Logger)
	smtpMailer := mailer.NewMailer(cfg.SMTP, logger.Logger)
	photoStorage, err := storage.NewPhotoStorage(cfg.Uploads.Dir)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	// Initialize services
	accountService := services.NewAuthService(userRepo, tokenGenerator, smtpMailer, cfg.AppBaseURL, cfg.FrontendBaseURL, logger.Logger)
	restaurantSvc := services.NewRestaurantService(restaurantRepo, geocoder, photoStorage, cfg.Uploads.BaseURL, logger.Logger)
	commentSvc := services.NewCommentService(commentRepo, restaurantRepo, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(accountService, logger.Logger)
	commentHandler := handlers.NewCommentHandler(commentSvc, logger.Logger)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantSvc, logger.Logger)
	adminHandler := handlers.NewAdminHandler(restaurantSvc, commentHandler, logger.Logger)

	// Initialize auth middleware
	authMw := authMiddleware.AuthMiddleware(tokenGenerator)
	adminMw := authMiddleware.AdminMiddleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(20 * 1024 * 1024)) // 20MB, leaves room for photo uploads

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Serve uploaded photos
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Register auth routes
		authHandler.RegisterRoutes(r, authMw)
		// Register public restaurant and comment routes
		restaurantHandler.RegisterRoutes(r, authMw, commentHandler)
		// Register admin routes with role middleware
		r.Group(func(r chi.Router) {
			r.Use(adminMw)
			adminHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
