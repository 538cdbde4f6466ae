package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/internal/normalize"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
)

// UserHandler renders the candidate profiles managed by the signed-in
// matchmaker.
type UserHandler struct {
	api *upstream.Client
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(api *upstream.Client) *UserHandler {
	return &UserHandler{api: api}
}

// Index handles GET /users
// Failures render an empty list with a flash rather than an error page.
func (h *UserHandler) Index(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	result := h.api.ListUsers(c.Request.Context(), p.Token)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "Failed to retrieve users.", result.Err)
		render(c, http.StatusOK, "users/index.html", gin.H{"Users": []models.Person{}})
		return
	}

	render(c, http.StatusOK, "users/index.html", gin.H{
		"Users": normalize.PersonList(result.Decode()),
	})
}

// CreatePage handles GET /users/new
func (h *UserHandler) CreatePage(c *gin.Context) {
	render(c, http.StatusOK, "users/create.html", nil)
}

// Create handles POST /users/new
func (h *UserHandler) Create(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	var form models.UserProfileForm
	if err := c.ShouldBind(&form); err != nil {
		flashValidationFailure(c, err, "Please correct the highlighted fields.")
		render(c, http.StatusOK, "users/create.html", gin.H{"Form": form})
		return
	}

	result := h.api.CreateUser(c.Request.Context(), p.Token, form)
	if result.Outcome != upstream.OutcomeSuccess {
		message := result.Message
		if message == "" {
			message = "Failed to create user profile"
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "users/create.html", gin.H{"Form": form})
		return
	}

	AddFlash(c, "success", "User profile created successfully!")
	c.Redirect(http.StatusFound, "/users")
}

// View handles GET /users/:id
func (h *UserHandler) View(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Invalid user identifier.")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	result := h.api.GetUser(c.Request.Context(), p.Token, userID)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "User not found or access denied.", result.Err)
		c.Redirect(http.StatusFound, "/users")
		return
	}

	render(c, http.StatusOK, "users/view.html", gin.H{
		"User": normalize.Person(result.Decode(), userID),
		"Raw":  result.Decode(),
	})
}

// EditPage handles GET /users/:id/edit
func (h *UserHandler) EditPage(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Invalid user identifier.")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	result := h.api.GetUser(c.Request.Context(), p.Token, userID)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "User not found or access denied.", result.Err)
		c.Redirect(http.StatusFound, "/users")
		return
	}

	render(c, http.StatusOK, "users/edit.html", gin.H{
		"UserID": userID,
		"User":   normalize.Person(result.Decode(), userID),
		"Raw":    result.Decode(),
	})
}

// Edit handles POST /users/:id/edit
func (h *UserHandler) Edit(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Invalid user identifier.")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	var form models.UserProfileForm
	if err := c.ShouldBind(&form); err != nil {
		flashValidationFailure(c, err, "Please correct the highlighted fields.")
		render(c, http.StatusOK, "users/edit.html", gin.H{"UserID": userID, "Form": form})
		return
	}

	result := h.api.UpdateUser(c.Request.Context(), p.Token, userID, form)
	if result.Outcome != upstream.OutcomeSuccess {
		message := result.Message
		if message == "" {
			message = "Failed to update user profile"
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "users/edit.html", gin.H{"UserID": userID, "Form": form})
		return
	}

	AddFlash(c, "success", "User profile updated successfully!")
	c.Redirect(http.StatusFound, "/users/"+strconv.Itoa(userID))
}
