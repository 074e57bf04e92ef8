// Package view turns handler output into response bodies.
package view

import (
	"job_portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Renderer writes the named view with data as the response
type Renderer interface {
	Render(c *gin.Context, status int, name string, data gin.H)
}

// JSONRenderer renders views as JSON documents:
//
//	{"view": name, "flashes": [...], "current_user": {...}, <data>}
//
// Queued flash messages are consumed by the render.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(c *gin.Context, status int, name string, data gin.H) {
	body := gin.H{}
	for k, v := range data {
		body[k] = v
	}
	body["view"] = name
	body["flashes"] = middleware.Flashes(c)
	if user := middleware.CurrentUser(c); user != nil {
		body["current_user"] = user
	}
	c.JSON(status, body)
}
