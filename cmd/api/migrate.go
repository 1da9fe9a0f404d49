package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/goalpath/internal/config"
	"github.com/xyz-asif/goalpath/internal/database"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres tables",
	Long:  `Applies the goals and users schema. Existing tables are left untouched.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StorageDriver != config.DriverPostgres {
		return fmt.Errorf("migrate requires STORAGE_DRIVER=%s, got %q", config.DriverPostgres, cfg.StorageDriver)
	}

	db, err := database.OpenPostgres(cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	logger.Info("Schema applied to %s", cfg.Postgres.Name)
	return nil
}
