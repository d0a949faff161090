package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"society-management-backend/internal/config"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository/postgres"
	"society-management-backend/internal/service"
)

var (
	configPath string
	seed       service.SuperAdminSeed

	rootCmd = &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the initial super admin account",
		Long:  `Creates a super admin with every permission. Does nothing if a super admin already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config/config.dev.yaml", "path to configuration file")
	rootCmd.Flags().StringVar(&seed.Username, "username", "superadmin", "login name")
	rootCmd.Flags().StringVar(&seed.Password, "password", "", "login password (defaults to $SUPERADMIN_PASSWORD)")
	rootCmd.Flags().StringVar(&seed.Name, "name", "Super Administrator", "display name")
	rootCmd.Flags().StringVar(&seed.Phone, "phone", "03001234567", "contact phone")
	rootCmd.Flags().StringVar(&seed.Email, "email", "admin@society.com", "contact email")
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if seed.Password == "" {
		seed.Password = os.Getenv("SUPERADMIN_PASSWORD")
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	store := postgres.NewStore(db)
	created, err := service.SeedSuperAdmin(ctx, store.Users, seed)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Super admin created", "username", seed.Username)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
