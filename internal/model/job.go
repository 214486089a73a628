// Package model holds the records the repositories read and write.
//
// Input types (NewJob, JobUpdate, JobFilter) are kept separate from the
// stored records so callers cannot set server-assigned or immutable fields.
package model

import "github.com/shopspring/decimal"

// Job is a row of the jobs table.
type Job struct {
	ID            int              `json:"id"`
	Title         string           `json:"title"`
	Salary        *int             `json:"salary"`
	Equity        *decimal.Decimal `json:"equity"`
	CompanyHandle string           `json:"companyHandle"`
}

// JobListing is a Job as returned by list queries, with the owning
// company's name joined in. CompanyName is nil when the company row is gone.
type JobListing struct {
	Job
	CompanyName *string `json:"companyName,omitempty"`
}

// JobDetail is a single Job with its company embedded in place of the handle.
type JobDetail struct {
	ID      int              `json:"id"`
	Title   string           `json:"title"`
	Salary  *int             `json:"salary"`
	Equity  *decimal.Decimal `json:"equity"`
	Company *Company         `json:"company"`
}

// NewJob is the input for creating a job.
type NewJob struct {
	Title         string           `json:"title" validate:"required,max=255"`
	Salary        *int             `json:"salary" validate:"omitempty,min=0,max=2147483647"`
	Equity        *decimal.Decimal `json:"equity"`
	CompanyHandle string           `json:"companyHandle" validate:"required,max=25"`
}

// JobUpdate is a partial update of a job. Nil fields are left unchanged;
// the id and company handle cannot be updated.
type JobUpdate struct {
	Title  *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Salary *int             `json:"salary" validate:"omitempty,min=0,max=2147483647"`
	Equity *decimal.Decimal `json:"equity"`
}

// Fields returns the set fields keyed by their logical names.
func (u JobUpdate) Fields() map[string]any {
	fields := make(map[string]any, 3)
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Salary != nil {
		fields["salary"] = *u.Salary
	}
	if u.Equity != nil {
		fields["equity"] = u.Equity.String()
	}
	return fields
}

// Empty reports whether no field is set.
func (u JobUpdate) Empty() bool {
	return u.Title == nil && u.Salary == nil && u.Equity == nil
}

// JobFilter holds the optional search criteria for listing jobs.
// Criteria combine with AND.
type JobFilter struct {
	// MinSalary keeps jobs paying at least this much.
	MinSalary *int `json:"minSalary" validate:"omitempty,min=0,max=2147483647"`

	// HasEquity keeps jobs with non-zero equity. False means no filtering.
	HasEquity bool `json:"hasEquity"`

	// Title keeps jobs whose title contains this text, case-insensitively.
	Title *string `json:"title" validate:"omitempty,min=1"`
}
