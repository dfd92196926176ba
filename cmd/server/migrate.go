// cmd/server/migrate.go
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mittirang/mittirang-backend/internal/database"
)

// mittirang migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema and seed the default admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := boot()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := seed(cmd.Context(), db, cfg); err != nil {
			return err
		}
		logrus.Info("Migrations complete")
		return nil
	},
}
