package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type CompanyRepository struct {
	db DBTX
}

func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const getCompanySQL = `SELECT handle, name, description, num_employees, logo_url
FROM companies
WHERE handle = $1`

// Get returns the company with the given handle.
func (r *CompanyRepository) Get(ctx context.Context, handle string) (*model.Company, error) {
	var (
		company   model.Company
		employees sql.NullInt32
		logoURL   sql.NullString
	)

	err := r.db.QueryRow(ctx, getCompanySQL, handle).
		Scan(&company.Handle, &company.Name, &company.Description, &employees, &logoURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No company: %s", handle), true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	company.EmployeeCount = intPtr(employees)
	company.LogoURL = stringPtr(logoURL)
	return &company, nil
}
