package model

// DashboardStats represents the statistics for admin.
// The jobs_* counters are independent "created within" windows, not buckets.
type DashboardStats struct {
	TotalJobs       int64 `json:"total_jobs"`
	TotalEmployers  int64 `json:"total_employers"`
	TotalJobseekers int64 `json:"total_jobseekers"`
	JobsDay         int64 `json:"jobs_day"`
	JobsWeek        int64 `json:"jobs_week"`
	JobsMonth       int64 `json:"jobs_month"`
	JobsYear        int64 `json:"jobs_year"`
}
