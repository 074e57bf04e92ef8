package model

import "time"

const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleJobseeker = "jobseeker"
)

// User represents an account of any role
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Company      string    `json:"company,omitempty"` // Only set for employers
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsEmployer() bool  { return u != nil && u.Role == RoleEmployer }
func (u *User) IsJobseeker() bool { return u != nil && u.Role == RoleJobseeker }
func (u *User) IsAdmin() bool     { return u != nil && u.Role == RoleAdmin }

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest is the registration form. Company is only kept for employers.
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required,notblank,max=100"`
	Email    string `form:"email" json:"email" binding:"required,email,max=120"`
	Password string `form:"password" json:"password" binding:"required,notblank,min=4"`
	Confirm  string `form:"confirm" json:"confirm" binding:"eqfield=Password"`
	Role     string `form:"role" json:"role" binding:"required,oneof=employer jobseeker"`
	Company  string `form:"company" json:"company" binding:"max=150"`
}

// ProfileRequest updates the display name only
type ProfileRequest struct {
	Name string `form:"name" json:"name" binding:"max=100"`
}
