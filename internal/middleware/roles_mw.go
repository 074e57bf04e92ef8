package middleware

import (
	"net/http"
	"net/url"
	"slices"

	"job_portal/internal/model"

	"github.com/gin-gonic/gin"
)

// LoginURL builds the login path that returns to next afterwards
func LoginURL(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// LoginRequired redirects anonymous requests to the login page,
// preserving the requested path.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// RoleMiddleware allows the request only for an authenticated user whose role
// is one of allowedRoles. Anonymous users go to the login page, other roles
// go back home with a warning.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			redirectToLogin(c)
			return
		}

		if !slices.Contains(allowedRoles, user.Role) {
			AddFlash(c, FlashDanger, "Unauthorized access")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// EmployerMiddleware checks if the user is an employer
func EmployerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleEmployer)
}

// JobseekerMiddleware checks if the user is a jobseeker
func JobseekerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleJobseeker)
}

func redirectToLogin(c *gin.Context) {
	AddFlash(c, FlashWarning, "Please log in to access this page.")
	c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
	c.Abort()
}
