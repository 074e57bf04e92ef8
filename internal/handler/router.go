package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"job_portal/internal/middleware"
	"job_portal/internal/service"
	"job_portal/internal/utils"
	"job_portal/internal/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Pinger reports storage health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Auth      service.AuthService
	Jobs      service.JobService
	Admin     service.AdminService
	Seed      service.SeedService
	JWTUtil   *utils.JWTUtil
	Renderer  view.Renderer
	Logger    *slog.Logger
	DB        Pinger
	Secure    bool // Secure flag on the session cookie
	CORSAllow []string
}

// NewRouter builds the gin engine with every route of the portal
func NewRouter(d Deps) *gin.Engine {
	registerFormValidators()

	if d.Renderer == nil {
		d.Renderer = view.NewJSONRenderer()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(d.Logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		middleware.Logger(c).Error("panic recovered", "panic", rec)
		renderError(c, d.Renderer, http.StatusInternalServerError, "Something went wrong")
	}))

	if len(d.CORSAllow) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = d.CORSAllow
		corsCfg.AllowCredentials = true
		corsCfg.AddAllowHeaders(middleware.RequestIDHeader)
		corsCfg.AddExposeHeaders(middleware.RequestIDHeader)
		corsCfg.MaxAge = 12 * time.Hour
		router.Use(cors.New(corsCfg))
	}

	router.Use(middleware.SessionMiddleware(d.JWTUtil, d.Auth))

	router.GET("/health", func(c *gin.Context) {
		if d.DB != nil {
			if err := d.DB.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	NewAuthHandler(d.Auth, d.Renderer, d.JWTUtil.TTL(), d.Secure).RegisterAuthRoutes(router)
	NewJobHandler(d.Jobs, d.Renderer).RegisterJobRoutes(router)
	NewEmployerHandler(d.Jobs, d.Renderer).RegisterEmployerRoutes(router, middleware.EmployerMiddleware())
	NewJobseekerHandler(d.Jobs, d.Auth, d.Renderer).RegisterJobseekerRoutes(router, middleware.JobseekerMiddleware())
	NewAdminHandler(d.Admin, d.Seed, d.Renderer).RegisterAdminRoutes(router, middleware.AdminMiddleware())

	router.NoRoute(func(c *gin.Context) {
		renderNotFound(c, d.Renderer, "page not found")
	})

	return router
}
