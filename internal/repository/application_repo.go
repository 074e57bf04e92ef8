package repository

import (
	"context"
	"fmt"

	"job_portal/internal/model"
)

// ApplicationRepository defines operations for job applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByJob(ctx context.Context, jobID int64) ([]model.ApplicationDetail, error)
	FindByUser(ctx context.Context, userID int64) ([]model.ApplicationDetail, error)
}

type applicationRepository struct {
	db DBTX
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.job_id, a.user_id, COALESCE(a.cover_letter, ''), a.applied_at,
                   j.title, COALESCE(u.name, ''), u.email
            FROM applications a
            JOIN jobs j ON j.id = a.job_id
            JOIN users u ON u.id = a.user_id`

const applicationOrder = ` ORDER BY a.applied_at DESC, a.id DESC`

// Create inserts a new application. There is no uniqueness on (job_id, user_id).
func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	sql := `INSERT INTO applications (job_id, user_id, cover_letter, applied_at)
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, app.JobID, app.UserID, nullable(app.CoverLetter), app.AppliedAt).Scan(&app.ID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return ErrReferenceNotFound
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByJob returns the applicants of a job, most recent first
func (r *applicationRepository) FindByJob(ctx context.Context, jobID int64) ([]model.ApplicationDetail, error) {
	return r.query(ctx, applicationSelect+` WHERE a.job_id = $1`+applicationOrder, jobID)
}

// FindByUser returns the applications of a jobseeker, most recent first
func (r *applicationRepository) FindByUser(ctx context.Context, userID int64) ([]model.ApplicationDetail, error) {
	return r.query(ctx, applicationSelect+` WHERE a.user_id = $1`+applicationOrder, userID)
}

func (r *applicationRepository) query(ctx context.Context, sql string, args ...any) ([]model.ApplicationDetail, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []model.ApplicationDetail{}
	for rows.Next() {
		var a model.ApplicationDetail
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.AppliedAt,
			&a.JobTitle, &a.ApplicantName, &a.ApplicantEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}
