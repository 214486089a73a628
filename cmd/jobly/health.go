package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/app"
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}

			a, err := app.New(cfg, log, loggerService)
			if err != nil {
				loggerService.Shutdown(0)
				return err
			}
			defer a.Close()

			return traced(cmd.Context(), log, loggerService, "health", func(ctx context.Context) error {
				report := a.CheckHealth(ctx)
				if err := utils.PrintJSON(cmd.OutOrStdout(), report); err != nil {
					return fmt.Errorf("printing result: %w", err)
				}
				if !report.Healthy() {
					return errors.New("unhealthy")
				}
				return nil
			})
		},
	}
}
