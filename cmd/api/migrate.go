package main

import (
	"errors"

	pg "medistock/internal/adapters/storage/postgres"
	"medistock/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema de Postgres (STORAGE_DRIVER=postgres)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.StorageDriver != config.StoragePostgres {
			return errors.New("migrate requires STORAGE_DRIVER=postgres")
		}

		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := pg.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		newLogger(cfg).Info("schema applied", nil)
		return nil
	},
}
