package main

import (
	"context"
	"time"

	"github.com/deppfellow/jobly/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown(10 * time.Second)

			return traced(cmd.Context(), log, loggerService, "migrate", func(ctx context.Context) error {
				return database.Migrate(ctx, log, cfg)
			})
		},
	}
}
