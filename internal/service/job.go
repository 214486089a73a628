package service

import (
	"context"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/validation"
	"github.com/rs/zerolog"
)

// JobStore is the persistence JobService needs.
// *repository.JobRepository implements it.
type JobStore interface {
	Create(ctx context.Context, in model.NewJob) (*model.Job, error)
	FindAll(ctx context.Context, filter model.JobFilter) ([]model.JobListing, error)
	Get(ctx context.Context, id int) (*model.JobDetail, error)
	Update(ctx context.Context, id int, update model.JobUpdate) (*model.Job, error)
}

// JobService validates job input before handing it to the store.
// Store errors are returned unchanged.
type JobService struct {
	store JobStore
	log   *zerolog.Logger
}

func NewJobService(store JobStore, log *zerolog.Logger) *JobService {
	return &JobService{store: store, log: log}
}

// logger prefers a logger carried by ctx, such as one with trace fields.
func (s *JobService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.log
}

// logFailure logs internal failures as errors and caller mistakes at debug.
func logFailure(log *zerolog.Logger, err error, msg string) {
	if errs.KindOf(err) == errs.KindInternal {
		log.Error().Err(err).Msg(msg)
		return
	}
	log.Debug().Err(err).Str("kind", errs.KindOf(err).String()).Msg(msg)
}

func (s *JobService) Create(ctx context.Context, in model.NewJob) (*model.Job, error) {
	log := s.logger(ctx)

	if err := validation.Check(in); err != nil {
		logFailure(log, err, "invalid job")
		return nil, err
	}

	job, err := s.store.Create(ctx, in)
	if err != nil {
		logFailure(log, err, "failed to create job")
		return nil, err
	}

	log.Info().
		Int("job_id", job.ID).
		Str("company_handle", job.CompanyHandle).
		Msg("job created")
	return job, nil
}

func (s *JobService) List(ctx context.Context, filter model.JobFilter) ([]model.JobListing, error) {
	log := s.logger(ctx)

	if err := validation.Check(filter); err != nil {
		logFailure(log, err, "invalid job filter")
		return nil, err
	}

	jobs, err := s.store.FindAll(ctx, filter)
	if err != nil {
		logFailure(log, err, "failed to list jobs")
		return nil, err
	}

	log.Debug().Int("count", len(jobs)).Msg("jobs listed")
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id int) (*model.JobDetail, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		logFailure(s.logger(ctx), err, "failed to get job")
		return nil, err
	}
	return job, nil
}

// Update validates the set fields; an update with none is rejected by the store.
func (s *JobService) Update(ctx context.Context, id int, update model.JobUpdate) (*model.Job, error) {
	log := s.logger(ctx)

	if err := validation.Check(update); err != nil {
		logFailure(log, err, "invalid job update")
		return nil, err
	}

	job, err := s.store.Update(ctx, id, update)
	if err != nil {
		logFailure(log, err, "failed to update job")
		return nil, err
	}

	log.Info().Int("job_id", job.ID).Msg("job updated")
	return job, nil
}
