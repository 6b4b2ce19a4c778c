package main

import (
	"context"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/log"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := loadConfig(log.InitLog)
		if err != nil {
			return err
		}
		defer done()

		zap.S().Info("Starting db migration")
		defer zap.S().Info("Db migrated")

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.InitialMigration(context.Background()); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		if err := migrations.MigrateStore(db, cfg); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		return nil
	},
}
