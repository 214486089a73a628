package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newJobsCmd() *cobra.Command {
	jobs := &cobra.Command{
		Use:   "jobs",
		Short: "List, show, create and update jobs",
	}

	jobs.AddCommand(newJobsListCmd(), newJobsGetCmd(), newJobsCreateCmd(), newJobsUpdateCmd())
	return jobs
}

func newJobsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs ordered by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := filterFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return runJobs(cmd, "jobs list", func(ctx context.Context, jobs *service.JobService) (any, error) {
				return jobs.List(ctx, filter)
			})
		},
	}

	cmd.Flags().Int("min-salary", 0, "only jobs paying at least this much")
	cmd.Flags().Bool("has-equity", false, "only jobs with non-zero equity")
	cmd.Flags().String("title", "", "only jobs whose title contains this text (case-insensitive)")
	return cmd
}

func newJobsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a job with its company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runJobs(cmd, "jobs get", func(ctx context.Context, jobs *service.JobService) (any, error) {
				return jobs.Get(ctx, id)
			})
		},
	}
}

func newJobsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := newJobFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return runJobs(cmd, "jobs create", func(ctx context.Context, jobs *service.JobService) (any, error) {
				return jobs.Create(ctx, in)
			})
		},
	}

	cmd.Flags().String("title", "", "job title")
	cmd.Flags().String("company", "", "handle of the hiring company")
	cmd.Flags().Int("salary", 0, "yearly salary")
	cmd.Flags().String("equity", "", "equity as a decimal between 0 and 1")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newJobsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the title, salary or equity of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			update, err := updateFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			return runJobs(cmd, "jobs update", func(ctx context.Context, jobs *service.JobService) (any, error) {
				return jobs.Update(ctx, id, update)
			})
		},
	}

	cmd.Flags().String("title", "", "new job title")
	cmd.Flags().Int("salary", 0, "new yearly salary")
	cmd.Flags().String("equity", "", "new equity as a decimal between 0 and 1")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewInvalidArgumentError(fmt.Sprintf("Invalid job id: %s", s), true, nil, nil)
	}
	return id, nil
}

// Only flags the user set are copied; the rest stay nil.

func intFlag(flags *pflag.FlagSet, name string) (*int, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func stringFlag(flags *pflag.FlagSet, name string) (*string, error) {
	if !flags.Changed(name) {
		return nil, nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func decimalFlag(flags *pflag.FlagSet, name string) (*decimal.Decimal, error) {
	s, err := stringFlag(flags, name)
	if err != nil || s == nil {
		return nil, err
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, errs.NewInvalidArgumentError("Validation failed", true, nil, []errs.FieldError{
			{Field: name, Error: "must be a decimal number"},
		})
	}
	return &d, nil
}

func filterFromFlags(flags *pflag.FlagSet) (model.JobFilter, error) {
	var (
		filter model.JobFilter
		err    error
	)
	if filter.MinSalary, err = intFlag(flags, "min-salary"); err != nil {
		return filter, err
	}
	if filter.HasEquity, err = flags.GetBool("has-equity"); err != nil {
		return filter, err
	}
	if filter.Title, err = stringFlag(flags, "title"); err != nil {
		return filter, err
	}
	return filter, nil
}

func newJobFromFlags(flags *pflag.FlagSet) (model.NewJob, error) {
	var (
		in  model.NewJob
		err error
	)
	if in.Title, err = flags.GetString("title"); err != nil {
		return in, err
	}
	if in.CompanyHandle, err = flags.GetString("company"); err != nil {
		return in, err
	}
	if in.Salary, err = intFlag(flags, "salary"); err != nil {
		return in, err
	}
	if in.Equity, err = decimalFlag(flags, "equity"); err != nil {
		return in, err
	}
	return in, nil
}

func updateFromFlags(flags *pflag.FlagSet) (model.JobUpdate, error) {
	var (
		update model.JobUpdate
		err    error
	)
	if update.Title, err = stringFlag(flags, "title"); err != nil {
		return update, err
	}
	if update.Salary, err = intFlag(flags, "salary"); err != nil {
		return update, err
	}
	if update.Equity, err = decimalFlag(flags, "equity"); err != nil {
		return update, err
	}
	return update, nil
}
