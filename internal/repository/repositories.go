package repository

import (
	"github.com/deppfellow/jobly/internal/app"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Jobs *JobRepository
}

// NewRepositories builds the repositories on the app's pool.
func NewRepositories(a *app.App) *Repositories {
	return &Repositories{
		Jobs: NewJobRepository(a.DB.Pool),
	}
}
