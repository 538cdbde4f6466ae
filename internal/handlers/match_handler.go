package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/internal/normalize"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
)

const (
	defaultMatchListLimit = 100
	defaultUserMatchLimit = 10
	defaultLimitPerMatch  = 5
	defaultMinScore       = 50
)

// MatchHandler renders match listings and compatibility breakdowns.
type MatchHandler struct {
	api *upstream.Client
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(api *upstream.Client) *MatchHandler {
	return &MatchHandler{api: api}
}

// Index handles GET /matches
func (h *MatchHandler) Index(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	limit := queryInt(c, "limit", defaultMatchListLimit)

	result := h.api.ListMatches(c.Request.Context(), p.Token, limit)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "Failed to retrieve matches.", result.Err)
		render(c, http.StatusOK, "matches/index.html", gin.H{"Matches": []models.Match{}})
		return
	}

	render(c, http.StatusOK, "matches/index.html", gin.H{
		"Matches": normalize.MatchList(result.Decode()),
	})
}

// UserMatches handles GET /matches/user/:id
// Renders the match list for one user together with the user's own profile.
func (h *MatchHandler) UserMatches(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		attachError(c, err)
		AddFlash(c, "danger", "Invalid user identifier.")
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	limit := queryInt(c, "limit", defaultUserMatchLimit)

	result := h.api.ListUserMatches(c.Request.Context(), p.Token, userID, limit)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "Failed to retrieve matches.", result.Err)
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	matches := normalize.MatchListForUser(result.Decode(), userID)

	userResult := h.api.GetUser(c.Request.Context(), p.Token, userID)
	if userResult.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "User not found or access denied.", userResult.Err)
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	render(c, http.StatusOK, "matches/user_matches.html", gin.H{
		"Matches": matches,
		"User":    normalize.Person(userResult.Decode(), userID),
	})
}

// Compatibility handles GET /matches/compatibility/:a/:b
// The two participant profiles are fetched concurrently; the rendered order
// is always A then B regardless of which fetch finished first.
func (h *MatchHandler) Compatibility(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	userAID, errA := strconv.Atoi(c.Param("a"))
	userBID, errB := strconv.Atoi(c.Param("b"))
	if errA != nil || errB != nil {
		AddFlash(c, "danger", "Invalid user identifiers.")
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	result := h.api.GetCompatibility(c.Request.Context(), p.Token, userAID, userBID)
	if result.Outcome != upstream.OutcomeSuccess {
		flashResultFailure(c, "Failed to retrieve compatibility data.", result.Err)
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	var (
		wg      sync.WaitGroup
		resultA upstream.Result
		resultB upstream.Result
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		resultA = h.api.GetUser(c.Request.Context(), p.Token, userAID)
	}()
	go func() {
		defer wg.Done()
		resultB = h.api.GetUser(c.Request.Context(), p.Token, userBID)
	}()
	wg.Wait()

	if resultA.Outcome != upstream.OutcomeSuccess || resultB.Outcome != upstream.OutcomeSuccess {
		AddFlash(c, "danger", "One or both users not found or access denied.")
		c.Redirect(http.StatusFound, "/matches")
		return
	}

	render(c, http.StatusOK, "matches/compatibility.html", gin.H{
		"Compatibility": normalize.Compatibility(result.Decode()),
		"UserA":         normalize.Person(resultA.Decode(), userAID),
		"UserB":         normalize.Person(resultB.Decode(), userBID),
	})
}

// AllMatches handles GET /matches/all
// The upstream enforces admin authorization; a 403 becomes a flash message.
func (h *MatchHandler) AllMatches(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	limitPerMatch := queryInt(c, "limit_per_match", defaultLimitPerMatch)
	minScore := queryInt(c, "min_score", defaultMinScore)

	result := h.api.ListAllMatches(c.Request.Context(), p.Token, limitPerMatch, minScore)
	switch {
	case result.Outcome == upstream.OutcomeSuccess:
		render(c, http.StatusOK, "matches/all_matches.html", gin.H{
			"Matches": normalize.MatchList(result.Decode()),
		})
	case result.StatusCode == http.StatusForbidden:
		AddFlash(c, "danger", "Access denied. Admin privileges required.")
		c.Redirect(http.StatusFound, "/matches")
	default:
		flashResultFailure(c, "Failed to retrieve matches.", result.Err)
		c.Redirect(http.StatusFound, "/matches")
	}
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
