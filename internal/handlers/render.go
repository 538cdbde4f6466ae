package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
)

const flashCookieName = "matchmaker_flash"

// Flash is a one-shot notification rendered on the next page view. Category
// follows the usual bootstrap alert levels (success, info, warning, danger).
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

const flashQueueKey = "flashQueue"

// AddFlash queues a flash message. The message is written to the cookie so
// it survives a redirect, and kept on the request context so a page
// rendered in the same request still shows it.
func AddFlash(c *gin.Context, category, message string) {
	queued := append(queuedFlashes(c), Flash{Category: category, Message: message})
	c.Set(flashQueueKey, queued)

	encoded, err := json.Marshal(append(readFlashes(c), queued...))
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, base64.URLEncoding.EncodeToString(encoded),
		300, "/", "", false, true)
}

// PopFlashes returns pending flash messages, both those carried on the
// request cookie and those queued during this request, and clears the
// cookie.
func PopFlashes(c *gin.Context) []Flash {
	flashes := append(readFlashes(c), queuedFlashes(c)...)
	if len(flashes) > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	}
	return flashes
}

func queuedFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashQueueKey); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}
	return nil
}

func readFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var flashes []Flash
	if err := json.Unmarshal(decoded, &flashes); err != nil {
		return nil
	}
	return flashes
}

// render writes an HTML page with the ambient page context (signed-in
// principal, pending flashes) merged into the handler's data.
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Principal"] = middleware.CurrentPrincipal(c)
	data["Flashes"] = PopFlashes(c)
	c.HTML(status, template, data)
}
