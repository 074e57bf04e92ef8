package handler

import (
	"net/http"

	"job_portal/internal/middleware"
	"job_portal/internal/model"
	"job_portal/internal/service"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
)

// JobseekerHandler serves the jobseeker area
type JobseekerHandler struct {
	jobs   service.JobService
	auth   service.AuthService
	render view.Renderer
}

// NewJobseekerHandler creates a new JobseekerHandler
func NewJobseekerHandler(jobs service.JobService, auth service.AuthService, r view.Renderer) *JobseekerHandler {
	return &JobseekerHandler{jobs: jobs, auth: auth, render: r}
}

func (h *JobseekerHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	apps, err := h.jobs.UserApplications(c.Request.Context(), user.ID)
	if err != nil {
		renderInternal(c, h.render, "error listing applications", err)
		return
	}
	h.render.Render(c, http.StatusOK, "jobseeker/dashboard", gin.H{"applications": apps})
}

func (h *JobseekerHandler) Profile(c *gin.Context) {
	h.render.Render(c, http.StatusOK, "jobseeker/profile", gin.H{"user": middleware.CurrentUser(c)})
}

// UpdateProfile changes the display name only
func (h *JobseekerHandler) UpdateProfile(c *gin.Context) {
	var req model.ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Render(c, http.StatusBadRequest, "jobseeker/profile", gin.H{
			"user":   middleware.CurrentUser(c),
			"errors": formErrors(err),
		})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c).ID, req.Name)
	if err != nil {
		renderInternal(c, h.render, "error updating profile", err)
		return
	}
	c.Set(middleware.CurrentUserKey, user)

	middleware.AddFlash(c, middleware.FlashSuccess, "Profile updated")
	h.render.Render(c, http.StatusOK, "jobseeker/profile", gin.H{"user": user})
}

// RegisterJobseekerRoutes registers the jobseeker-only routes
func (h *JobseekerHandler) RegisterJobseekerRoutes(r gin.IRouter, jobseekerMW gin.HandlerFunc) {
	jobseekerRoutes := r.Group("/jobseeker")
	jobseekerRoutes.Use(jobseekerMW)
	{
		jobseekerRoutes.GET("/dashboard", h.Dashboard)
		jobseekerRoutes.GET("/profile", h.Profile)
		jobseekerRoutes.POST("/profile", h.UpdateProfile)
	}
}
