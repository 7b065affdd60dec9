package main

import (
	"fmt"

	"github.com/cmlabs-hris/sge-backend-go/internal/config"
	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/sge-backend-go/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		switch cfg.Database.Driver {
		case config.DriverPostgres:
			db, err := database.NewPostgreSQLDB(cmd.Context(), cfg.DatabaseURL(), database.PoolOptions{MaxConns: 1})
			if err != nil {
				return fmt.Errorf("connect to postgres: %w", err)
			}
			defer db.Close()

			if err := postgresql.Migrate(cmd.Context(), db); err != nil {
				return err
			}
		case config.DriverSQLite:
			db, err := sqlite.Open(cfg.Database.SQLitePath)
			if err != nil {
				return err
			}
			defer db.Close()
		default:
			return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
		}

		log.Info().Str("driver", cfg.Database.Driver).Msg("schema is up to date")
		return nil
	},
}
