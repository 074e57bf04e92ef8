package service

import (
	"context"
	"testing"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Stats(t *testing.T) {
	store := repository.NewMemoryStore()
	auth := newTestAuth(store)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	emp := registerUser(t, auth, "emp@acme.io", model.RoleEmployer)
	registerUser(t, auth, "js1@acme.io", model.RoleJobseeker)
	registerUser(t, auth, "js2@acme.io", model.RoleJobseeker)

	ages := []time.Duration{
		time.Hour,            // day
		3 * 24 * time.Hour,   // week
		20 * 24 * time.Hour,  // month
		200 * 24 * time.Hour, // year
		400 * 24 * time.Hour, // older than a year
	}
	for _, age := range ages {
		require.NoError(t, store.Jobs().Create(ctx, &model.Job{Title: "t", Description: "d", EmployerID: emp.ID, CreatedAt: now.Add(-age)}))
	}

	stats, err := NewAdminService(store, func() time.Time { return now }).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.DashboardStats{
		TotalJobs:       5,
		TotalEmployers:  1,
		TotalJobseekers: 2,
		JobsDay:         1,
		JobsWeek:        2,
		JobsMonth:       3,
		JobsYear:        4,
	}, stats)
}
