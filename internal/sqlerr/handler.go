package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// Behavior:
//   - If err unwraps into *sqlerr.Error, return its Code.
//   - If err unwraps into a raw *pgconn.PgError, map its SQLSTATE.
//   - Otherwise return sqlerr.Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// We map SQLSTATE + Severity into our enums for easier switching and keep the
// original for Unwrap().
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	jobs + UniqueViolation => JOB_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(singularize(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// singularize strips a plural suffix from a table name.
// "companies" -> "company", "jobs" -> "job".
func singularize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "s") && len(name) > 1:
		return name[:len(name)-1]
	}
	return name
}

// formatUserFriendlyMessage produces a caller-facing error message from
// table/column metadata. It is not meant for logs.
func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case ForeignKeyViolation:
		// Example: "The referenced company does not exist"
		return fmt.Sprintf("The referenced %s does not exist",
			strings.ToLower(getEntityName(referencedTable(sqlErr), sqlErr.ColumnName)))

	case UniqueViolation:
		// "identifier" is replaced later if the column can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists",
			strings.ToLower(getEntityName(sqlErr.TableName, "")))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidText, NumericOutOfRange:
		return "One or more values are malformed or out of range"

	default:
		return "An error occurred while processing your request"
	}
}

// referencedTable guesses the referenced table of a foreign key violation.
// PostgreSQL reports the referencing table, so without a column hint we
// fall back to the constraint name ("jobs_company_handle_fkey").
func referencedTable(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return ""
	}
	if m := fkeyRe.FindStringSubmatch(sqlErr.ConstraintName); len(m) > 1 {
		parts := strings.Split(m[1], "_")
		return parts[0]
	}
	return sqlErr.TableName
}

// referenceSuffixes are column suffixes that name another entity.
var referenceSuffixes = []string{"_id", "_handle"}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with a reference suffix, use the base name.
//     e.g. "company_handle" -> "Company"
//  2. Otherwise use table name, singularized.
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	lowerCol := strings.ToLower(columnName)
	for _, suffix := range referenceSuffixes {
		if columnName != "" && strings.HasSuffix(lowerCol, suffix) {
			return humanizeText(strings.TrimSuffix(lowerCol, suffix))
		}
	}

	if tableName != "" {
		return humanizeText(singularize(tableName))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"logo_url" -> "Logo Url"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var (
	// unique_<table>_<column>
	uniquePrefixRe = regexp.MustCompile(`^unique_[^_]+_(.+)$`)
	// <table>_<column>_key or <table>_<column>_ukey
	uniqueKeyRe = regexp.MustCompile(`^[^_]+_(.+)_(?:key|ukey)$`)
	// <table>_<column>_fkey
	fkeyRe = regexp.MustCompile(`^[^_]+_(.+)_fkey$`)
)

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_jobs_title -> "title"
//
//  2. "<table>_<column>_(key|ukey)"
//     Example: companies_name_key -> "name"
//
// Multi-column constraints come back joined, e.g. "title_company_handle".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	if m := uniquePrefixRe.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	if m := uniqueKeyRe.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	return ""
}

// HandleError converts a low-level database error into an errs.Error.
//
// Output:
//   - nil stays nil
//   - *errs.Error: returned unchanged
//   - *pgconn.PgError: mapped by SQLSTATE (unique -> AlreadyExists,
//     FK/not-null/check/malformed input -> InvalidArgument, rest -> Internal)
//   - pgx.ErrNoRows / sql.ErrNoRows: NotFound
//   - anything else: Internal, with the original error kept as cause
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewInvalidArgumentError(userMessage, true, &errorCode, nil).WithCause(sqlErr)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", strings.ToLower(humanizeText(columnName)))
			}
			return errs.NewAlreadyExistsError(userMessage, true, &errorCode).WithCause(sqlErr)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewInvalidArgumentError(userMessage, true, &errorCode, fieldErrors).WithCause(sqlErr)

		case CheckViolation, InvalidText, NumericOutOfRange:
			return errs.NewInvalidArgumentError(userMessage, true, &errorCode, nil).WithCause(sqlErr)

		default:
			return errs.NewInternalError().WithCause(sqlErr)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil).WithCause(err)
	}

	return errs.NewInternalError().WithCause(err)
}
