package model

import "time"

const MaxCoverLetterLength = 2000

// Application links a jobseeker to a job
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	UserID      int64     `json:"user_id"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
}

// ApplicationDetail is an application joined with its job and applicant
type ApplicationDetail struct {
	Application
	JobTitle       string `json:"job_title"`
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
}

// ApplyRequest is the apply form on the job detail page
type ApplyRequest struct {
	CoverLetter string `form:"cover_letter" json:"cover_letter" binding:"max=2000"`
}
