package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
)

// ProfileHandler renders and updates the signed-in matchmaker's own profile.
type ProfileHandler struct {
	api *upstream.Client
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(api *upstream.Client) *ProfileHandler {
	return &ProfileHandler{api: api}
}

// View handles GET /profile
func (h *ProfileHandler) View(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	result := h.api.GetProfile(c.Request.Context(), p.Token)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "Failed to load your profile.", result.Err)
		render(c, http.StatusOK, "profile/view.html", gin.H{"Profile": map[string]any{}})
		return
	}

	profile, _ := result.Decode().(map[string]any)
	render(c, http.StatusOK, "profile/view.html", gin.H{"Profile": profile})
}

// Update handles POST /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var form models.MatchmakerProfileForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Please correct the highlighted fields.")
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	result := h.api.UpdateProfile(c.Request.Context(), p.Token, form)
	if result.Outcome != upstream.OutcomeSuccess {
		message := result.Message
		if message == "" {
			message = "Failed to update your profile"
		}
		flashResultFailure(c, message, result.Err)
		c.Redirect(http.StatusFound, "/profile")
		return
	}

	AddFlash(c, "success", "Profile updated successfully!")
	c.Redirect(http.StatusFound, "/profile")
}
