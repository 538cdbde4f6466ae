package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// connectionFlash is the user-facing message for an unreachable upstream.
const connectionFlash = "Could not reach the matchmaking service. Please try again later."

// flashResultFailure records the failure of an upstream call as a flash
// message. Rejections surface the upstream's own message; connection
// failures surface a generic warning.
func flashResultFailure(c *gin.Context, message string, err error) {
	if err != nil {
		attachError(c, err)
		AddFlash(c, "warning", connectionFlash)
		return
	}
	attachError(c, errors.RejectedError(message))
	AddFlash(c, "danger", message)
}
