package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/app"
	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/lib/utils"
	"github.com/deppfellow/jobly/internal/logger"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobly",
		Short:         "Manage job listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(), newJobsCmd(), newHealthCmd())
	return root
}

// bootstrap loads config and builds the logger and New Relic service.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, &log, loggerService, nil
}

// traced runs fn inside a New Relic transaction named name, with a logger
// carrying the trace context stored in ctx.
func traced(ctx context.Context, log *zerolog.Logger, loggerService *logger.LoggerService, name string, fn func(context.Context) error) error {
	txn := loggerService.StartTransaction(name)
	defer txn.End()

	ctx = newrelic.NewContext(ctx, txn)
	ctx = logger.WithTraceContext(log.With().Str("command", name).Logger(), txn).WithContext(ctx)

	err := fn(ctx)
	if err != nil {
		txn.NoticeError(err)
	}
	return err
}

// runJobs wires the services for one command, runs fn and prints its result.
func runJobs(cmd *cobra.Command, name string, fn func(context.Context, *service.JobService) (any, error)) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log, loggerService)
	if err != nil {
		loggerService.Shutdown(0)
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close app")
		}
	}()

	services := service.NewServices(a, repository.NewRepositories(a))

	return traced(cmd.Context(), log, loggerService, name, func(ctx context.Context) error {
		out, err := fn(ctx, services.Jobs)
		if err != nil {
			return err
		}
		if err := utils.PrintJSON(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("printing result: %w", err)
		}
		return nil
	})
}
