package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/internal/principal"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
)

// AuthHandler handles the matchmaker sign-in surface: login, registration,
// logout and password reset. Credentials are verified by the upstream API;
// this layer only establishes and revokes the session cookie.
type AuthHandler struct {
	api    *upstream.Client
	bridge *principal.Bridge
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(api *upstream.Client, bridge *principal.Bridge) *AuthHandler {
	return &AuthHandler{api: api, bridge: bridge}
}

// LoginPage handles GET /auth/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
}

// Login handles POST /auth/login
// On success the session cookie is established and the matchmaker is
// redirected to the page they originally requested.
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Please provide a valid email and password.")
		render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
		return
	}

	result := h.api.Authenticate(c.Request.Context(), form.Email, form.Password)
	if result.Outcome != upstream.OutcomeSuccess {
		metrics.Logins.WithLabelValues("failure").Inc()
		message := result.Message
		if message == "" {
			message = "Invalid email or password"
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
		return
	}

	p, err := principalFromLogin(result.Decode())
	if err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		attachError(c, err)
		AddFlash(c, "danger", "Sign-in response could not be processed.")
		render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
		return
	}

	if err := h.bridge.Establish(c, *p); err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		attachError(c, err)
		AddFlash(c, "danger", "Could not establish a session. Please try again.")
		render(c, http.StatusOK, "auth/login.html", gin.H{"Next": c.Query("next")})
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

// RegisterPage handles GET /auth/register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "auth/register.html", nil)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Please fill in all registration fields correctly.")
		render(c, http.StatusOK, "auth/register.html", nil)
		return
	}

	result := h.api.Register(c.Request.Context(), form.Email, form.Password, form.Name)
	if result.Outcome != upstream.OutcomeSuccess {
		message := result.Message
		if message == "" {
			message = "Registration failed"
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "auth/register.html", nil)
		return
	}

	AddFlash(c, "success", "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/auth/login")
}

// Logout handles GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.bridge.Revoke(c)
	AddFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusFound, "/auth/login")
}

// ResetPasswordPage handles GET /auth/reset-password
func (h *AuthHandler) ResetPasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "auth/reset_password.html", nil)
}

// ResetPassword handles POST /auth/reset-password
// The upstream may return a demo reset token in its response; when present
// it is surfaced to the user directly.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var form models.PasswordResetForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Please provide a valid email address.")
		render(c, http.StatusOK, "auth/reset_password.html", nil)
		return
	}

	result := h.api.ResetPassword(c.Request.Context(), form.Email)
	if result.Outcome != upstream.OutcomeSuccess {
		message := result.Message
		if message == "" {
			message = "Password reset failed"
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "auth/reset_password.html", nil)
		return
	}

	if payload, ok := result.Decode().(map[string]any); ok {
		if token, ok := payload["token"].(string); ok && token != "" {
			AddFlash(c, "info", fmt.Sprintf("Password reset initiated. For demo purposes, here's your token: %s", token))
			c.Redirect(http.StatusFound, "/auth/login")
			return
		}
	}

	AddFlash(c, "info", "Password reset instructions have been sent to your email.")
	c.Redirect(http.StatusFound, "/auth/login")
}

// principalFromLogin extracts the session record from an authentication
// response. The identifier is carried as a string regardless of the wire
// type the upstream used.
func principalFromLogin(payload any) (*principal.Principal, error) {
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected login response shape")
	}

	token, ok := body["token"].(string)
	if !ok || token == "" {
		return nil, fmt.Errorf("login response missing token")
	}

	record, ok := body["matchmaker"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("login response missing matchmaker record")
	}

	id := identifierString(record["id"])
	if id == "" {
		return nil, fmt.Errorf("login response missing matchmaker id")
	}

	email, _ := record["email"].(string)
	name, _ := record["name"].(string)

	return &principal.Principal{ID: id, Email: email, Name: name, Token: token}, nil
}

// identifierString renders an upstream identifier as its canonical string
// form. JSON numbers arrive as float64; integral values must not pick up a
// decimal point.
func identifierString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int:
		return strconv.Itoa(id)
	default:
		return ""
	}
}

// safeNext restricts post-login redirects to local paths so the next
// parameter cannot be abused as an open redirect.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	if _, err := url.Parse(next); err != nil {
		return "/"
	}
	return next
}
