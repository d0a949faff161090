package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"society-management-backend/internal/config"
	"society-management-backend/internal/jobs"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/metrics"
	"society-management-backend/internal/repository/postgres"
	"society-management-backend/internal/scheduler"
	"society-management-backend/internal/service"
	"society-management-backend/internal/utils"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'generate-monthly-bills', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.InitializeWithWriter(cfg.LogFileOptions().Writer(), cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Society Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	ledgerSvc := service.NewLedgerService(store.Users, store.Transactions, cfg.Ledger.AuditAllFlows)
	policy := utils.BillingPolicy{
		DueDay:       cfg.Billing.DueDay,
		DailyPenalty: decimal.NewFromFloat(cfg.Billing.DailyPenalty),
	}

	jobServices := &jobs.Services{
		Bill:  service.NewBillService(store.TxManager, store.Bills, store.Users, ledgerSvc, emailSvc, policy),
		Store: service.NewStoreService(store.TxManager, store.Products, store.Orders, store.Users, ledgerSvc, emailSvc, cfg.Email.AdminAddress),
	}

	// Replicas coordinate through Redis when it is configured
	var locker jobs.Locker
	if cfg.Redis.Addr != "" {
		redisLocker, err := jobs.NewRedisLocker(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err, "addr", cfg.Redis.Addr)
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisLocker.Close()
		locker = redisLocker
		logger.Info("Job lock enabled", "addr", cfg.Redis.Addr)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		if cfg.Metrics.ListenAddr != "" {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", m.Handler())
				logger.Info("Metrics endpoint listening", "address", cfg.Metrics.ListenAddr)
				if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
					logger.Error("Metrics server error", "error", err)
				}
			}()
		}
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, m, locker, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := runJobOnce(jobRunner, *runOnce); err != nil {
			logger.Error("Job execution failed", "job", *runOnce, "error", err)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner, cfg.Scheduler)
	if err != nil {
		log.Fatalf("Failed to register cron jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "jobs", cronScheduler.Entries())

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) error {
	switch jobName {
	case jobs.JobGenerateMonthlyBills:
		return jobRunner.GenerateMonthlyBills()
	case jobs.JobSendBillReminders:
		return jobRunner.SendBillReminders()
	case jobs.JobNotifyLowStock:
		return jobRunner.NotifyLowStock()
	case "all":
		return jobRunner.RunAll()
	default:
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - %s\n", jobs.JobGenerateMonthlyBills)
		fmt.Printf("  - %s\n", jobs.JobSendBillReminders)
		fmt.Printf("  - %s\n", jobs.JobNotifyLowStock)
		fmt.Printf("  - all\n")
		return fmt.Errorf("unknown job %q", jobName)
	}
}
