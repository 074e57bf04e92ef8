package handler

import (
	"errors"
	"net/http"
	"strconv"

	"job_portal/internal/middleware"
	"job_portal/internal/model"
	"job_portal/internal/service"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
)

// JobHandler serves the public job pages and the apply form
type JobHandler struct {
	service service.JobService
	render  view.Renderer
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(s service.JobService, r view.Renderer) *JobHandler {
	return &JobHandler{service: s, render: r}
}

func (h *JobHandler) Home(c *gin.Context) {
	jobs, err := h.service.LatestJobs(c.Request.Context())
	if err != nil {
		renderInternal(c, h.render, "error listing latest jobs", err)
		return
	}
	h.render.Render(c, http.StatusOK, "index", gin.H{"jobs": jobs})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context())
	if err != nil {
		renderInternal(c, h.render, "error listing jobs", err)
		return
	}
	h.render.Render(c, http.StatusOK, "jobs/list", gin.H{"jobs": jobs})
}

// loadJob resolves the :id job or renders 404
func (h *JobHandler) loadJob(c *gin.Context) (*model.Job, bool) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		renderNotFound(c, h.render, service.ErrJobNotFound.Error())
		return nil, false
	}
	job, err := h.service.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			renderNotFound(c, h.render, err.Error())
		} else {
			renderInternal(c, h.render, "error getting job", err)
		}
		return nil, false
	}
	return job, true
}

func (h *JobHandler) JobDetail(c *gin.Context) {
	job, ok := h.loadJob(c)
	if !ok {
		return
	}
	h.render.Render(c, http.StatusOK, "jobs/detail", gin.H{"job": job})
}

// Apply handles the apply form. Only an authenticated jobseeker creates an
// application; anyone else is sent to the login page.
func (h *JobHandler) Apply(c *gin.Context) {
	job, ok := h.loadJob(c)
	if !ok {
		return
	}

	var req model.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Render(c, http.StatusBadRequest, "jobs/detail", gin.H{
			"job":    job,
			"form":   gin.H{"cover_letter": req.CoverLetter},
			"errors": formErrors(err),
		})
		return
	}

	user := middleware.CurrentUser(c)
	if !user.IsJobseeker() {
		h.redirectToLogin(c, job)
		return
	}

	app, err := h.service.Apply(c.Request.Context(), job.ID, user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			renderNotFound(c, h.render, err.Error())
		case errors.Is(err, service.ErrNotJobseeker):
			h.redirectToLogin(c, job)
		default:
			renderInternal(c, h.render, "error applying to job", err)
		}
		return
	}

	middleware.AddFlash(c, middleware.FlashSuccess, "Application submitted")
	h.render.Render(c, http.StatusCreated, "apply_success", gin.H{"job": job, "application": app})
}

func (h *JobHandler) redirectToLogin(c *gin.Context, job *model.Job) {
	middleware.AddFlash(c, middleware.FlashWarning, "You must be logged in as a jobseeker to apply.")
	c.Redirect(http.StatusFound, middleware.LoginURL("/jobs/"+strconv.FormatInt(job.ID, 10)))
}

// RegisterJobRoutes registers the public job routes
func (h *JobHandler) RegisterJobRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.JobDetail)
	r.POST("/jobs/:id", h.Apply)
}
