package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kumarvenka/ship-app/internal/config"
	"github.com/Kumarvenka/ship-app/internal/platform/database"
)

func newMigrateCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(database.MigrationCommands, "|") + "]",
		Short:     "Apply or inspect the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: database.MigrationCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			cfg, logger, err := load()
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.DriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s", config.DriverPostgres)
			}

			db, err := database.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db, command); err != nil {
				return err
			}
			logger.Info("migration finished", "command", command)
			return nil
		},
	}
}
