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

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "society-management-backend/internal/api/http"
	"society-management-backend/internal/config"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/metrics"
	"society-management-backend/internal/repository/postgres"
	"society-management-backend/internal/security"
	"society-management-backend/internal/service"
	"society-management-backend/internal/tracing"
	"society-management-backend/internal/utils"
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
	logger.InitializeWithWriter(cfg.LogFileOptions().Writer(), cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Society Management Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	if !cfg.Ledger.AuditAllFlows {
		logger.Warn("Ledger audit covers event bookings only; bill payments, orders and balance changes leave no transaction record",
			"setting", "ledger.audit_all_flows")
	}
	if cfg.Email.SendGridAPIKey == "" {
		logger.Warn("SendGrid API key not set; outgoing email is disabled")
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	ledgerSvc := service.NewLedgerService(store.Users, store.Transactions, cfg.Ledger.AuditAllFlows)
	policy := utils.BillingPolicy{
		DueDay:       cfg.Billing.DueDay,
		DailyPenalty: decimal.NewFromFloat(cfg.Billing.DailyPenalty),
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Auth:           service.NewAuthService(store.Users, tokenManager, cfg.Billing.DefaultMarlaSize),
		User:           service.NewUserService(store.Users),
		Access:         service.NewAccessService(store.Users),
		Ledger:         ledgerSvc,
		Bill:           service.NewBillService(store.TxManager, store.Bills, store.Users, ledgerSvc, emailSvc, policy),
		Event:          service.NewEventService(store.TxManager, store.Events, store.Users, ledgerSvc),
		Store:          service.NewStoreService(store.TxManager, store.Products, store.Orders, store.Users, ledgerSvc, emailSvc, cfg.Email.AdminAddress),
		BalanceRequest: service.NewBalanceRequestService(store.TxManager, store.BalanceRequests, store.Users, ledgerSvc, emailSvc),
		AdminUser:      service.NewAdminUserService(store.TxManager, store.Users, ledgerSvc),
		Complaint:      service.NewComplaintService(store.Complaints, store.Users),
		Health:         service.NewHealthService(store.TxManager, store.Doctors, store.Appointments, store.Users),
		Dashboard:      service.NewDashboardService(store.Users, store.Complaints, store.Events, store.Products, store.Orders),
	})

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	srv := &http.Server{
		Addr: cfg.GetServerAddress(),
		Handler: httpapi.NewRouter(handler, httpapi.RouterOptions{
			Tokens:         tokenManager,
			Metrics:        m,
			Store:          store,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Failed to flush traces", "error", err)
	}
	logger.Info("Server stopped")
}
