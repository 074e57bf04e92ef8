package service

import (
	"context"
	"fmt"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
)

// Windows counted by the admin dashboard, each measured back from the same "now"
var statsWindows = struct {
	Day, Week, Month, Year time.Duration
}{
	Day:   24 * time.Hour,
	Week:  7 * 24 * time.Hour,
	Month: 30 * 24 * time.Hour,
	Year:  365 * 24 * time.Hour,
}

// AdminService computes the admin dashboard
type AdminService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type adminService struct {
	store repository.Store
	now   func() time.Time
}

// NewAdminService creates a new AdminService. A nil clock means time.Now.
func NewAdminService(store repository.Store, now func() time.Time) AdminService {
	if now == nil {
		now = time.Now
	}
	return &adminService{store: store, now: now}
}

func (s *adminService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}
	var err error

	if stats.TotalJobs, err = s.store.Jobs().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEmployers, err = s.store.Users().CountByRole(ctx, model.RoleEmployer); err != nil {
		return nil, err
	}
	if stats.TotalJobseekers, err = s.store.Users().CountByRole(ctx, model.RoleJobseeker); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	windows := []struct {
		dst *int64
		d   time.Duration
	}{
		{&stats.JobsDay, statsWindows.Day},
		{&stats.JobsWeek, statsWindows.Week},
		{&stats.JobsMonth, statsWindows.Month},
		{&stats.JobsYear, statsWindows.Year},
	}
	for _, w := range windows {
		n, err := s.store.Jobs().CountCreatedSince(ctx, now.Add(-w.d))
		if err != nil {
			return nil, fmt.Errorf("failed to compute job stats: %w", err)
		}
		*w.dst = n
	}
	return stats, nil
}
