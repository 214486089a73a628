package main

import (
	"errors"
	"testing"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFromFlags(t *testing.T) {
	cmd := newJobsListCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--min-salary", "0", "--title", "eng"}))

	filter, err := filterFromFlags(cmd.Flags())
	require.NoError(t, err)

	require.NotNil(t, filter.MinSalary)
	assert.Equal(t, 0, *filter.MinSalary)
	assert.False(t, filter.HasEquity)
	assert.Equal(t, "eng", *filter.Title)
}

func TestFilterFromFlagsEmpty(t *testing.T) {
	cmd := newJobsListCmd()
	require.NoError(t, cmd.Flags().Parse(nil))

	filter, err := filterFromFlags(cmd.Flags())
	require.NoError(t, err)
	assert.Nil(t, filter.MinSalary)
	assert.Nil(t, filter.Title)
}

func TestUpdateFromFlagsOnlySetFields(t *testing.T) {
	cmd := newJobsUpdateCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--equity", "0.25"}))

	update, err := updateFromFlags(cmd.Flags())
	require.NoError(t, err)

	assert.Nil(t, update.Title)
	assert.Nil(t, update.Salary)
	assert.Equal(t, "0.25", update.Equity.String())
	assert.Equal(t, map[string]any{"equity": "0.25"}, update.Fields())
}

func TestUpdateFromFlagsNone(t *testing.T) {
	cmd := newJobsUpdateCmd()
	require.NoError(t, cmd.Flags().Parse(nil))

	update, err := updateFromFlags(cmd.Flags())
	require.NoError(t, err)
	assert.True(t, update.Empty())
}

func TestNewJobFromFlagsBadEquity(t *testing.T) {
	cmd := newJobsCreateCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--title", "Engineer", "--company", "c1", "--equity", "lots"}))

	_, err := newJobFromFlags(cmd.Flags())

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []errs.FieldError{{Field: "equity", Error: "must be a decimal number"}}, appErr.Errors)
}

func TestNewJobFromFlags(t *testing.T) {
	cmd := newJobsCreateCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--title", "Engineer", "--company", "c1", "--salary", "90000"}))

	in, err := newJobFromFlags(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "Engineer", in.Title)
	assert.Equal(t, "c1", in.CompanyHandle)
	assert.Equal(t, 90000, *in.Salary)
	assert.Nil(t, in.Equity)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseID("abc")
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	assert.Equal(t, "Invalid job id: abc", err.Error())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(errs.NewInvalidArgumentError("No data", true, nil, nil)))
	assert.Equal(t, 3, exitCode(errs.NewNotFoundError("No job: 1", true, nil)))
	assert.Equal(t, 4, exitCode(errs.NewAlreadyExistsError("dup", true, nil)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	cmd, _, err := root.Find([]string{"jobs", "update"})
	require.NoError(t, err)
	assert.Equal(t, "update ID", cmd.Use)

	cmd, _, err = root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.Use)
}
