package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"

	httpapi "prestige-rentals-backend/internal/api/http"
	"prestige-rentals-backend/internal/config"
	"prestige-rentals-backend/internal/logger"
	"prestige-rentals-backend/internal/pricing"
	"prestige-rentals-backend/internal/repository/postgres"
	"prestige-rentals-backend/internal/security"
	"prestige-rentals-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Prestige Rentals Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	guard := security.NewGuard()

	// Fee schedule from configuration
	fees, err := feeScheduleFromConfig(cfg.Pricing)
	if err != nil {
		logger.Error("Invalid pricing configuration", "error", err)
		log.Fatalf("Invalid pricing configuration: %v", err)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.Customers(), store.Employees(), tokenManager)
	rentalSvc := service.NewRentalService(store, guard, fees, emailSvc)
	fleetSvc := service.NewFleetService(store, guard)

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, authSvc, rentalSvc, fleetSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

func feeScheduleFromConfig(cfg config.PricingConfig) (pricing.FeeSchedule, error) {
	lateFraction, err := decimal.NewFromString(cfg.LateFeeDailyFraction)
	if err != nil {
		return pricing.FeeSchedule{}, err
	}
	earlyFee, err := decimal.NewFromString(cfg.EarlyReturnFee)
	if err != nil {
		return pricing.FeeSchedule{}, err
	}
	return pricing.FeeSchedule{
		LateDailyFraction: lateFraction,
		EarlyReturnFee:    earlyFee,
	}, nil
}
