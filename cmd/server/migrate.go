package main

import (
	"errors"

	"github.com/spf13/cobra"

	pg "osintkit/internal/adapters/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage != "postgres" {
				return errors.New("migrate needs STORAGE=postgres")
			}
			ctx := cmd.Context()
			db, err := pg.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(ctx, db, log); err != nil {
				return err
			}
			ver, err := pg.MigrationVersion(ctx, db)
			if err != nil {
				return err
			}
			log.WithField("version", ver).Info("database schema up to date")
			return nil
		},
	}
}
