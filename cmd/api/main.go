package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"webcharge_api/internal/adapter/http/routes"
	"webcharge_api/internal/adapter/persistence/sqlstore"
	"webcharge_api/internal/infrastructure/config"
	"webcharge_api/internal/infrastructure/database"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "webcharge-api",
		Short:        "Web store payment backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the storage schema for the configured backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), configPath)
		},
	})
	return root
}

func serve(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return routes.Run(ctx, cfg)
}

func migrate(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	switch cfg.Storage.Backend {
	case config.BackendSQL:
		h, err := database.OpenSQL(cfg.Storage)
		if err != nil {
			return err
		}
		defer h.Close()
		if err := sqlstore.Migrate(h.ReadWrite); err != nil {
			return fmt.Errorf("migrate sql: %w", err)
		}
		log.Printf("[migrate][sql] schema up to date driver=%s", cfg.Storage.Driver)
	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.Dynamo)
		if err != nil {
			return err
		}
		if err := database.CreateTables(ctx, ddb, cfg.Dynamo); err != nil {
			return fmt.Errorf("create dynamodb tables: %w", err)
		}
		log.Printf("[migrate][dynamodb] tables ready")
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}
