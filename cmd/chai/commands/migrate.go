package commands

import (
	"chai-app-go/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the database schema.

Tables come from the models; SQL files in the nearest migrations
directory are then applied once each and recorded in schema_migrations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func runMigrate() error {
	conn, err := db.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			log.Error("db: close failed", "err", err)
		}
	}()

	if err := db.Migrate(conn); err != nil {
		return err
	}
	log.Info("db: migrated", "driver", cfg.DB.Driver)
	return nil
}
