package service

import (
	"github.com/deppfellow/jobly/internal/app"
	"github.com/deppfellow/jobly/internal/repository"
)

type Services struct {
	Jobs *JobService
}

func NewServices(a *app.App, repos *repository.Repositories) *Services {
	return &Services{
		Jobs: NewJobService(repos.Jobs, a.Logger),
	}
}
