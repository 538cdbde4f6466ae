package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/normalize"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
)

// HomeHandler renders the landing page with dashboard counters.
type HomeHandler struct {
	api *upstream.Client
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(api *upstream.Client) *HomeHandler {
	return &HomeHandler{api: api}
}

// Index handles GET /
// Anonymous visitors see zero counters; signed-in matchmakers get live
// stats. Upstream failures fall back to zeros silently.
func (h *HomeHandler) Index(c *gin.Context) {
	stats := normalize.Stats(nil)

	if p := middleware.CurrentPrincipal(c); p != nil {
		result := h.api.MatchmakerStats(c.Request.Context(), p.Token)
		if result.Outcome == upstream.OutcomeSuccess {
			stats = normalize.Stats(result.Decode())
		} else {
			attachError(c, result.Err)
		}
	}

	render(c, http.StatusOK, "index.html", gin.H{"Stats": stats})
}
