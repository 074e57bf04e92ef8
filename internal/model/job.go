package model

import "time"

// Job is a posting owned by an employer
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	EmployerID  int64     `json:"employer_id"`
	Company     string    `json:"company,omitempty"` // Read-only, joined from the employer
	CreatedAt   time.Time `json:"created_at"`
}

// CreateJobRequest is the post-job form
type CreateJobRequest struct {
	Title       string `form:"title" json:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" json:"description" binding:"required,notblank"`
	Location    string `form:"location" json:"location" binding:"max=120"`
}
