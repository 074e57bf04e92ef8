package handler

import (
	"net/http"

	"job_portal/internal/middleware"
	"job_portal/internal/service"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard and the sample-data seed
type AdminHandler struct {
	admin  service.AdminService
	seed   service.SeedService
	render view.Renderer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin service.AdminService, seed service.SeedService, r view.Renderer) *AdminHandler {
	return &AdminHandler{admin: admin, seed: seed, render: r}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		renderInternal(c, h.render, "error computing admin stats", err)
		return
	}
	h.render.Render(c, http.StatusOK, "admin/dashboard", gin.H{
		"total_jobs":       stats.TotalJobs,
		"total_employers":  stats.TotalEmployers,
		"total_jobseekers": stats.TotalJobseekers,
		"jobs_day":         stats.JobsDay,
		"jobs_week":        stats.JobsWeek,
		"jobs_month":       stats.JobsMonth,
		"jobs_year":        stats.JobsYear,
	})
}

// CreateSample seeds demo data once; later calls only flash a notice
func (h *AdminHandler) CreateSample(c *gin.Context) {
	created, err := h.seed.CreateSample(c.Request.Context())
	if err != nil {
		renderInternal(c, h.render, "error creating sample data", err)
		return
	}
	if created {
		middleware.AddFlash(c, middleware.FlashSuccess, "Sample data created")
	} else {
		middleware.AddFlash(c, middleware.FlashInfo, "Sample already created")
	}
	c.Redirect(http.StatusFound, "/")
}

// RegisterAdminRoutes registers the admin routes and the public seed route
func (h *AdminHandler) RegisterAdminRoutes(r gin.IRouter, adminMW gin.HandlerFunc) {
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/dashboard", h.Dashboard)
	}

	r.GET("/create-sample", h.CreateSample)
}
