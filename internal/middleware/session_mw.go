package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/service"
	"job_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookieName = "session"
	CurrentUserKey    = "currentUser"
)

// UserLoader resolves the user behind a session
type UserLoader interface {
	CurrentUser(ctx context.Context, id int64) (*model.User, error)
}

// SessionMiddleware resolves the current user from the session cookie.
// It never aborts: a missing or invalid session leaves the request anonymous.
func SessionMiddleware(jwtUtil *utils.JWTUtil, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := jwtUtil.ValidateToken(token)
		if err != nil {
			ClearSession(c)
			c.Next()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				ClearSession(c)
			} else {
				Logger(c).Error("failed to load session user", "user_id", claims.UserID, "error", err)
			}
			c.Next()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for an anonymous request
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// StartSession stores a signed session token in an HttpOnly cookie
func StartSession(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSession expires the session cookie and forgets the current user
func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.Set(CurrentUserKey, (*model.User)(nil))
}
