package cli

import (
	"fmt"

	"hospital_queue/internal/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции и заполнить справочник отделений",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			if err := catalog.New(db, nil, 0, logger).Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s миграции применены, справочник отделений заполнен\n", color.New(color.FgGreen).Sprint("OK"))
			return nil
		},
	}
}
