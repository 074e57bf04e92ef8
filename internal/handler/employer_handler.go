package handler

import (
	"errors"
	"net/http"

	"job_portal/internal/middleware"
	"job_portal/internal/model"
	"job_portal/internal/service"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
)

// EmployerHandler serves the employer area
type EmployerHandler struct {
	service service.JobService
	render  view.Renderer
}

// NewEmployerHandler creates a new EmployerHandler
func NewEmployerHandler(s service.JobService, r view.Renderer) *EmployerHandler {
	return &EmployerHandler{service: s, render: r}
}

func (h *EmployerHandler) Dashboard(c *gin.Context) {
	employer := middleware.CurrentUser(c)
	jobs, err := h.service.EmployerJobs(c.Request.Context(), employer.ID)
	if err != nil {
		renderInternal(c, h.render, "error listing employer jobs", err)
		return
	}
	h.render.Render(c, http.StatusOK, "employer/dashboard", gin.H{"jobs": jobs})
}

func (h *EmployerHandler) PostJobPage(c *gin.Context) {
	h.render.Render(c, http.StatusOK, "employer/post_job", nil)
}

func (h *EmployerHandler) PostJob(c *gin.Context) {
	var req model.CreateJobRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Render(c, http.StatusBadRequest, "employer/post_job", gin.H{
			"form":   gin.H{"title": req.Title, "description": req.Description, "location": req.Location},
			"errors": formErrors(err),
		})
		return
	}

	employer := middleware.CurrentUser(c)
	job, err := h.service.PostJob(c.Request.Context(), employer.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrNotEmployer) {
			renderError(c, h.render, http.StatusForbidden, err.Error())
			return
		}
		renderInternal(c, h.render, "error posting job", err)
		return
	}

	middleware.Logger(c).Info("job posted", "job_id", job.ID, "employer_id", employer.ID)
	middleware.AddFlash(c, middleware.FlashSuccess, "Job posted")
	c.Redirect(http.StatusFound, "/employer/dashboard")
}

// Applications lists the applicants of one of the employer's own jobs
func (h *EmployerHandler) Applications(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c, h.render, service.ErrJobNotFound.Error())
		return
	}

	employer := middleware.CurrentUser(c)
	job, apps, err := h.service.JobApplications(c.Request.Context(), jobID, employer.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			renderNotFound(c, h.render, err.Error())
		case errors.Is(err, service.ErrForbidden):
			renderError(c, h.render, http.StatusForbidden, err.Error())
		default:
			renderInternal(c, h.render, "error listing job applications", err)
		}
		return
	}
	h.render.Render(c, http.StatusOK, "employer/applications", gin.H{"job": job, "applications": apps})
}

// RegisterEmployerRoutes registers the employer-only routes
func (h *EmployerHandler) RegisterEmployerRoutes(r gin.IRouter, employerMW gin.HandlerFunc) {
	employerRoutes := r.Group("/employer")
	employerRoutes.Use(employerMW)
	{
		employerRoutes.GET("/dashboard", h.Dashboard)
		employerRoutes.GET("/post_job", h.PostJobPage)
		employerRoutes.POST("/post_job", h.PostJob)
		employerRoutes.GET("/job/:id/applications", h.Applications)
	}
}
