package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "spendly-backend/internal/api/http"
	"spendly-backend/internal/config"
	"spendly-backend/internal/jobs"
	"spendly-backend/internal/logger"
	"spendly-backend/internal/repository/postgres"
	"spendly-backend/internal/scheduler"
	"spendly-backend/internal/security"
	"spendly-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present; real env vars win either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Spendly Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply pending migrations
	if err := postgres.RunMigrations(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database schema up to date")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Category name translator
	var translator service.Translator
	if cfg.Translator.Enabled {
		translator = service.NewGoogleTranslator(cfg.Translator.APIKey)
		logger.Info("Category translator enabled")
	} else {
		translator = service.NewNoopTranslator()
		logger.Info("Category translator disabled, names are stored as entered")
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	homeSvc := service.NewHomeService(
		store.HomeRepository,
		store.UserRepository,
		store.CardRepository,
		store.InvitationRepository,
		store.NotificationRepository,
		emailSvc,
		cfg.SeedCategories(),
	)
	entrySvc := service.NewEntryService(
		store.EntryRepository,
		store.UserRepository,
		store.CategoryRepository,
		store.CardRepository,
	)
	summarySvc := service.NewSummaryService(
		store.EntryRepository,
		store.UserRepository,
		store.CategoryRepository,
		store.CardRepository,
	)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.UserRepository,
		store.CategoryRepository,
	)
	categorySvc := service.NewCategoryService(store.CategoryRepository, translator)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// In-process scheduler for loan reminders
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// HTTP server
	server := httpapi.NewServer(
		cfg.GetServerAddress(),
		tokenManager,
		authSvc,
		homeSvc,
		entrySvc,
		summarySvc,
		loanSvc,
		categorySvc,
		noteSvc,
	)

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
