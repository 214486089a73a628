package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlbuilder"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// jobColumns maps JobUpdate field names to jobs columns.
var jobColumns = map[string]string{
	"title":  "title",
	"salary": "salary",
	"equity": "equity",
}

// jobFilterClause turns the criteria into a WHERE body. Predicates are
// appended as threshold, equity flag, title pattern.
func jobFilterClause(filter model.JobFilter) sqlbuilder.Clause {
	var where sqlbuilder.Where
	if filter.MinSalary != nil {
		where.AtLeast("salary", *filter.MinSalary)
	}
	if filter.HasEquity {
		where.Positive("equity")
	}
	if filter.Title != nil {
		where.Contains("title", *filter.Title)
	}
	return where.Clause()
}

// JobRepository reads and writes the jobs table.
type JobRepository struct {
	db        DBTX
	companies *CompanyRepository
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{
		db:        db,
		companies: NewCompanyRepository(db),
	}
}

const jobReturning = "RETURNING id, title, salary, equity, company_handle"

// scanJob reads id, title, salary, equity, company_handle and then extra.
func scanJob(row rowScanner, extra ...any) (model.Job, error) {
	var (
		job    model.Job
		salary sql.NullInt32
		equity decimal.NullDecimal
	)

	dest := append([]any{&job.ID, &job.Title, &salary, &equity, &job.CompanyHandle}, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.Job{}, err
	}

	job.Salary = intPtr(salary)
	job.Equity = decimalPtr(equity)
	return job, nil
}

func noJob(id int) *errs.Error {
	return errs.NewNotFoundError(fmt.Sprintf("No job: %d", id), true, nil)
}

func duplicateJob(title, companyHandle string, cause error) *errs.Error {
	code := "JOB_ALREADY_EXISTS"
	return errs.NewAlreadyExistsError(
		fmt.Sprintf("Duplicate job: %s at company %s", title, companyHandle), true, &code,
	).WithCause(cause)
}

const createJobSQL = `INSERT INTO jobs (title, salary, equity, company_handle)
VALUES ($1, $2, $3, $4)
` + jobReturning

// Create inserts a job. A second job with the same title at the same
// company fails with AlreadyExists.
func (r *JobRepository) Create(ctx context.Context, in model.NewJob) (*model.Job, error) {
	row := r.db.QueryRow(ctx, createJobSQL, in.Title, intArg(in.Salary), decimalArg(in.Equity), in.CompanyHandle)

	job, err := scanJob(row)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, duplicateJob(in.Title, in.CompanyHandle, err)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &job, nil
}

const findJobsSQL = `SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name
FROM jobs j
LEFT JOIN companies AS c ON c.handle = j.company_handle`

// FindAll lists the jobs matching filter, ordered by title.
func (r *JobRepository) FindAll(ctx context.Context, filter model.JobFilter) ([]model.JobListing, error) {
	clause := jobFilterClause(filter)

	query := findJobsSQL
	if !clause.Empty() {
		query += "\nWHERE " + clause.SQL
	}
	query += "\nORDER BY title"

	rows, err := r.db.Query(ctx, query, clause.Values...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	listings := make([]model.JobListing, 0)
	for rows.Next() {
		var companyName sql.NullString
		job, err := scanJob(rows, &companyName)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		listings = append(listings, model.JobListing{Job: job, CompanyName: stringPtr(companyName)})
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return listings, nil
}

const getJobSQL = `SELECT id, title, salary, equity, company_handle
FROM jobs
WHERE id = $1`

// Get returns the job with its company embedded.
func (r *JobRepository) Get(ctx context.Context, id int) (*model.JobDetail, error) {
	job, err := scanJob(r.db.QueryRow(ctx, getJobSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, noJob(id)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	company, err := r.companies.Get(ctx, job.CompanyHandle)
	if err != nil {
		return nil, err
	}

	return &model.JobDetail{
		ID:      job.ID,
		Title:   job.Title,
		Salary:  job.Salary,
		Equity:  job.Equity,
		Company: company,
	}, nil
}

// Update applies the set fields of update to the job and returns the
// stored record. An update with no fields fails with InvalidArgument.
func (r *JobRepository) Update(ctx context.Context, id int, update model.JobUpdate) (*model.Job, error) {
	set, err := sqlbuilder.PartialUpdate(update.Fields(), jobColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE jobs\nSET %s\nWHERE id = %s\n%s", set.SQL, set.Next(), jobReturning)
	args := append(set.Values, id)

	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, noJob(id)
	}
	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation && update.Title != nil {
		if handle, lookupErr := r.companyHandleOf(ctx, id); lookupErr == nil {
			return nil, duplicateJob(*update.Title, handle, err)
		}
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &job, nil
}

const jobCompanySQL = `SELECT company_handle
FROM jobs
WHERE id = $1`

// companyHandleOf reads the immutable company handle of a job.
func (r *JobRepository) companyHandleOf(ctx context.Context, id int) (string, error) {
	var handle string
	err := r.db.QueryRow(ctx, jobCompanySQL, id).Scan(&handle)
	return handle, err
}
