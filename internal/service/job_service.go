package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrForbidden    = errors.New("forbidden: job belongs to another employer")
	ErrNotEmployer  = errors.New("only employers can post jobs")
	ErrNotJobseeker = errors.New("only jobseekers can apply to jobs")
)

// LatestJobsLimit is the number of postings shown on the home page
const LatestJobsLimit = 6

// JobService defines operations on jobs and applications
type JobService interface {
	LatestJobs(ctx context.Context) ([]model.Job, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
	GetJob(ctx context.Context, id int64) (*model.Job, error)
	PostJob(ctx context.Context, employerID int64, req model.CreateJobRequest) (*model.Job, error)
	EmployerJobs(ctx context.Context, employerID int64) ([]model.Job, error)
	Apply(ctx context.Context, jobID, userID int64, req model.ApplyRequest) (*model.Application, error)
	JobApplications(ctx context.Context, jobID, employerID int64) (*model.Job, []model.ApplicationDetail, error)
	UserApplications(ctx context.Context, userID int64) ([]model.ApplicationDetail, error)
}

type jobService struct {
	store repository.Store
}

// NewJobService creates a new JobService
func NewJobService(store repository.Store) JobService {
	return &jobService{store: store}
}

func (s *jobService) LatestJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.store.Jobs().List(ctx, LatestJobsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) ListJobs(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.store.Jobs().List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *jobService) GetJob(ctx context.Context, id int64) (*model.Job, error) {
	job, err := s.store.Jobs().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// PostJob creates a job owned by employerID, which must be an employer account
func (s *jobService) PostJob(ctx context.Context, employerID int64, req model.CreateJobRequest) (*model.Job, error) {
	job := &model.Job{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		EmployerID:  employerID,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		employer, err := tx.Users().FindByID(ctx, employerID)
		if err != nil {
			return fmt.Errorf("failed to load employer: %w", err)
		}
		if !employer.IsEmployer() {
			return ErrNotEmployer
		}
		job.Company = employer.Company
		return tx.Jobs().Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) EmployerJobs(ctx context.Context, employerID int64) ([]model.Job, error) {
	jobs, err := s.store.Jobs().FindByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employer jobs: %w", err)
	}
	return jobs, nil
}

// Apply records an application by a jobseeker. Applying twice creates two records.
func (s *jobService) Apply(ctx context.Context, jobID, userID int64, req model.ApplyRequest) (*model.Application, error) {
	app := &model.Application{
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: strings.TrimSpace(req.CoverLetter),
		AppliedAt:   time.Now().UTC(),
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		job, err := tx.Jobs().FindByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("failed to load job: %w", err)
		}
		if job == nil {
			return ErrJobNotFound
		}
		user, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load applicant: %w", err)
		}
		if !user.IsJobseeker() {
			return ErrNotJobseeker
		}
		return tx.Applications().Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// JobApplications returns a job and its applicants if employerID owns it
func (s *jobService) JobApplications(ctx context.Context, jobID, employerID int64) (*model.Job, []model.ApplicationDetail, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.EmployerID != employerID {
		return nil, nil, ErrForbidden
	}

	apps, err := s.store.Applications().FindByJob(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	return job, apps, nil
}

func (s *jobService) UserApplications(ctx context.Context, userID int64) ([]model.ApplicationDetail, error) {
	apps, err := s.store.Applications().FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user applications: %w", err)
	}
	return apps, nil
}
