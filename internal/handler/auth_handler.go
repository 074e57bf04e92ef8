package handler

import (
	"errors"
	"net/http"
	"time"

	"job_portal/internal/middleware"
	"job_portal/internal/model"
	"job_portal/internal/service"
	"job_portal/internal/view"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	service      service.AuthService
	render       view.Renderer
	sessionTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, r view.Renderer, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: s, render: r, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

func nextParam(c *gin.Context) string {
	if next := c.Query("next"); next != "" {
		return next
	}
	return c.PostForm("next")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render.Render(c, http.StatusOK, "auth/login", gin.H{"next": nextParam(c)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Render(c, http.StatusBadRequest, "auth/login", gin.H{
			"form":   gin.H{"email": req.Email},
			"errors": formErrors(err),
			"next":   nextParam(c),
		})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AddFlash(c, middleware.FlashDanger, "Invalid credentials")
			h.render.Render(c, http.StatusUnauthorized, "auth/login", gin.H{
				"form": gin.H{"email": req.Email},
				"next": nextParam(c),
			})
			return
		}
		renderInternal(c, h.render, "login failed", err)
		return
	}

	middleware.StartSession(c, token, h.sessionTTL, h.secureCookie)
	middleware.Logger(c).Info("user logged in", "user_id", user.ID, "role", user.Role)
	middleware.AddFlash(c, middleware.FlashSuccess, "Logged in successfully")
	c.Redirect(http.StatusFound, safeNext(nextParam(c)))
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render.Render(c, http.StatusOK, "auth/register", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req model.RegisterRequest
	bindErr := c.ShouldBind(&req)
	form := gin.H{"name": req.Name, "email": req.Email, "role": req.Role, "company": req.Company}
	if bindErr != nil {
		h.render.Render(c, http.StatusBadRequest, "auth/register", gin.H{"form": form, "errors": formErrors(bindErr)})
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			middleware.AddFlash(c, middleware.FlashDanger, "Email already registered")
			h.render.Render(c, http.StatusConflict, "auth/register", gin.H{
				"form":   form,
				"errors": map[string]string{"email": "Email already registered"},
			})
			return
		}
		renderInternal(c, h.render, "registration failed", err)
		return
	}

	middleware.Logger(c).Info("user registered", "user_id", user.ID, "role", user.Role)
	middleware.AddFlash(c, middleware.FlashSuccess, "Registered! Please login.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	middleware.AddFlash(c, middleware.FlashInfo, "Logged out")
	c.Redirect(http.StatusFound, "/")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRouter) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", middleware.LoginRequired(), h.Logout)
}
