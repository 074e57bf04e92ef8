package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job_portal/internal/model"

	"github.com/jackc/pgx/v5"
)

// JobRepository defines operations for job postings
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id int64) (*model.Job, error)
	List(ctx context.Context, limit int) ([]model.Job, error)
	FindByEmployer(ctx context.Context, employerID int64) ([]model.Job, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.title, j.description, COALESCE(j.location, ''), j.employer_id, COALESCE(u.company, ''), j.created_at
            FROM jobs j JOIN users u ON u.id = j.employer_id`

// Newest first; id breaks ties between rows created in the same instant.
const jobOrder = ` ORDER BY j.created_at DESC, j.id DESC`

// Create inserts a new job
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	sql := `INSERT INTO jobs (title, description, location, employer_id, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, job.Title, job.Description, nullable(job.Location), job.EmployerID, job.CreatedAt).Scan(&job.ID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by its ID, returning nil when absent
func (r *jobRepository) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	var j model.Job
	err := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id).Scan(
		&j.ID, &j.Title, &j.Description, &j.Location, &j.EmployerID, &j.Company, &j.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find job by ID: %w", err)
	}
	return &j, nil
}

// List returns the most recent jobs first; limit <= 0 returns all of them
func (r *jobRepository) List(ctx context.Context, limit int) ([]model.Job, error) {
	if limit > 0 {
		return r.query(ctx, jobSelect+jobOrder+` LIMIT $1`, limit)
	}
	return r.query(ctx, jobSelect+jobOrder)
}

// FindByEmployer returns the jobs posted by one employer, most recent first
func (r *jobRepository) FindByEmployer(ctx context.Context, employerID int64) ([]model.Job, error) {
	return r.query(ctx, jobSelect+` WHERE j.employer_id = $1`+jobOrder, employerID)
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountCreatedSince counts jobs with created_at >= since
func (r *jobRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE created_at >= $1`, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs since %s: %w", since.Format(time.RFC3339), err)
	}
	return count, nil
}

func (r *jobRepository) query(ctx context.Context, sql string, args ...any) ([]model.Job, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Location, &j.EmployerID, &j.Company, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}
