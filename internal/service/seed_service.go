package service

import (
	"context"
	"fmt"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/utils"
)

// SampleEmployerEmail marks whether the sample data has been created
const SampleEmployerEmail = "emp@company.com"

const SampleJobseekerEmail = "js@user.com"

// SeedService creates the first-run admin and the demo data set
type SeedService interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
	CreateSample(ctx context.Context) (bool, error)
}

type seedService struct {
	store repository.Store
}

// NewSeedService creates a new SeedService
func NewSeedService(store repository.Store) SeedService {
	return &seedService{store: store}
}

// EnsureAdmin creates the admin account unless a user with that email exists.
// It reports whether an account was created.
func (s *seedService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}

	created := false
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		created = true
		return tx.Users().Create(ctx, &model.User{
			Email:        email,
			PasswordHash: hash,
			Name:         "Admin",
			Role:         model.RoleAdmin,
			CreatedAt:    time.Now().UTC(),
		})
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}
	return created, nil
}

// CreateSample inserts one employer, one jobseeker and two jobs.
// It is a no-op reporting false when the sample employer already exists.
// The jobseeker is skipped when its email is already registered.
func (s *seedService) CreateSample(ctx context.Context) (bool, error) {
	empHash, err := utils.HashPassword("emppass")
	if err != nil {
		return false, err
	}
	seekerHash, err := utils.HashPassword("jspass")
	if err != nil {
		return false, err
	}

	created := false
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().FindByEmail(ctx, SampleEmployerEmail)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		now := time.Now().UTC()
		emp := &model.User{Email: SampleEmployerEmail, PasswordHash: empHash, Name: "Employer Inc", Role: model.RoleEmployer, Company: "Employer Inc", CreatedAt: now}
		seeker := &model.User{Email: SampleJobseekerEmail, PasswordHash: seekerHash, Name: "Job Seeker", Role: model.RoleJobseeker, CreatedAt: now}
		if err := tx.Users().Create(ctx, emp); err != nil {
			return err
		}
		// The sample jobseeker address may already belong to a registered user
		taken, err := tx.Users().FindByEmail(ctx, seeker.Email)
		if err != nil {
			return err
		}
		if taken == nil {
			if err := tx.Users().Create(ctx, seeker); err != nil {
				return err
			}
		}

		jobs := []*model.Job{
			{Title: "Frontend Developer", Description: "Work with React/HTML/CSS", Location: "Remote", EmployerID: emp.ID, CreatedAt: now},
			{Title: "Backend Python Developer", Description: "Flask / Django experience", Location: "Bengaluru", EmployerID: emp.ID, CreatedAt: now},
		}
		for _, j := range jobs {
			if err := tx.Jobs().Create(ctx, j); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to create sample data: %w", err)
	}
	return created, nil
}
