package main

import (
	"github.com/spf13/cobra"

	"blogicum/internal/config"
	"blogicum/internal/infrastructure/database"
	"blogicum/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel)

			if err := database.Migrate(poolConfig(cfg), cfg.MigrationsDir); err != nil {
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	}
}
