package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const (
	flashCookieName = "flash"
	flashKey        = "flashes"
)

// Flash is a one-shot user-visible message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a message. It survives a redirect through a cookie.
func AddFlash(c *gin.Context, category, message string) {
	flashes := append(pendingFlashes(c), Flash{Category: category, Message: message})
	c.Set(flashKey, flashes)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.RawURLEncoding.EncodeToString(raw), 0, "/", "", false, true)
}

// Flashes returns and consumes all queued messages
func Flashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	c.Set(flashKey, []Flash{})
	if _, err := c.Cookie(flashCookieName); err == nil || len(flashes) > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	}
	return flashes
}

func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashKey); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}

	flashes := []Flash{}
	if cookie, err := c.Cookie(flashCookieName); err == nil && cookie != "" {
		if raw, err := base64.RawURLEncoding.DecodeString(cookie); err == nil {
			_ = json.Unmarshal(raw, &flashes)
		}
	}
	c.Set(flashKey, flashes)
	return flashes
}
