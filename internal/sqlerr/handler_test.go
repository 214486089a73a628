package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "companies_name_key"`,
		TableName:      "companies",
		ConstraintName: "companies_name_key",
	}

	err := HandleError(fmt.Errorf("insert: %w", pgErr))

	require.True(t, errors.Is(err, errs.ErrAlreadyExists))
	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "COMPANY_ALREADY_EXISTS", appErr.Code)
	assert.Equal(t, "A company with this name already exists", appErr.Message)

	var raw *pgconn.PgError
	assert.True(t, errors.As(err, &raw), "driver error stays reachable")
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23503",
		TableName:      "jobs",
		ConstraintName: "jobs_company_handle_fkey",
	})

	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
	assert.Equal(t, "The referenced company does not exist", err.Error())
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "jobs", ColumnName: "title"})

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errs.KindInvalidArgument, appErr.Kind)
	assert.Equal(t, "JOB_REQUIRED", appErr.Code)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, appErr.Errors)
}

func TestHandleErrorNoRows(t *testing.T) {
	assert.True(t, errors.Is(HandleError(pgx.ErrNoRows), errs.ErrNotFound))
}

func TestHandleErrorPassThrough(t *testing.T) {
	assert.Nil(t, HandleError(nil))

	original := errs.NewNotFoundError("No job: 3", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	err := HandleError(context.DeadlineExceeded)

	assert.True(t, errors.Is(err, errs.ErrInternal))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	err = HandleError(&pgconn.PgError{Code: "40P01"})
	assert.True(t, errors.Is(err, errs.ErrInternal))
}

func TestErrCode(t *testing.T) {
	raw := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, UniqueViolation, ErrCode(raw))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(raw)))
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	items := []struct {
		constraint string
		column     string
	}{
		{"unique_jobs_title", "title"},
		{"companies_name_key", "name"},
		{"companies_name_ukey", "name"},
		{"jobs_title_company_handle_key", "title_company_handle"},
		{"pk_whatever", ""},
		{"", ""},
	}
	for _, item := range items {
		assert.Equal(t, item.column, extractColumnForUniqueViolation(item.constraint), item.constraint)
	}
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Company", getEntityName("jobs", "company_handle"))
	assert.Equal(t, "User", getEntityName("", "user_id"))
	assert.Equal(t, "Company", getEntityName("companies", ""))
	assert.Equal(t, "Job", getEntityName("jobs", "title"))
	assert.Equal(t, "record", getEntityName("", ""))
}
