package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/cache"
	"github.com/shidduch-link/matchmaker-web/internal/models"
	"github.com/shidduch-link/matchmaker-web/internal/normalize"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
	"github.com/shidduch-link/matchmaker-web/pkg/storage"
)

// ApplyHandler serves the public applicant intake form. No session is
// required; the matchmaker directory shown in the form comes from the
// directory cache.
type ApplyHandler struct {
	api       *upstream.Client
	directory *cache.DirectoryCache
}

// NewApplyHandler creates a new ApplyHandler
func NewApplyHandler(api *upstream.Client, directory *cache.DirectoryCache) *ApplyHandler {
	return &ApplyHandler{api: api, directory: directory}
}

// Page handles GET /apply and GET /apply/:matchmakerID
func (h *ApplyHandler) Page(c *gin.Context) {
	render(c, http.StatusOK, "applicants/public_apply.html", gin.H{
		"Matchmakers":          h.directory.Get(c.Request.Context()),
		"SelectedMatchmakerID": preselectedMatchmaker(c),
	})
}

// Submit handles POST /apply and POST /apply/:matchmakerID
// The form is validated locally, then forwarded upstream as multipart form
// data with the optional picture attached.
func (h *ApplyHandler) Submit(c *gin.Context) {
	matchmakers := h.directory.Get(c.Request.Context())
	selected := preselectedMatchmaker(c)

	var form models.ApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		flashValidationFailure(c, err, "Please correct the highlighted fields.")
		render(c, http.StatusOK, "applicants/public_apply.html", gin.H{
			"Matchmakers":          matchmakers,
			"SelectedMatchmakerID": selected,
			"Form":                 form,
		})
		return
	}

	// Matchmaker comes either from the dropdown or the preselected route
	matchmakerID := form.MatchmakerID
	if matchmakerID == 0 {
		matchmakerID = selected
	}
	if matchmakerID == 0 {
		AddFlash(c, "danger", "Please choose a matchmaker.")
		render(c, http.StatusOK, "applicants/public_apply.html", gin.H{
			"Matchmakers":          matchmakers,
			"SelectedMatchmakerID": selected,
			"Form":                 form,
		})
		return
	}

	picture, err := h.readPicture(c)
	if err != nil {
		metrics.ApplicationSubmissions.WithLabelValues("invalid_picture").Inc()
		attachError(c, err)
		AddFlash(c, "danger", err.Error())
		render(c, http.StatusOK, "applicants/public_apply.html", gin.H{
			"Matchmakers":          matchmakers,
			"SelectedMatchmakerID": selected,
			"Form":                 form,
		})
		return
	}

	result := h.api.SubmitApplication(c.Request.Context(), matchmakerID, form.Fields(), picture)
	if result.Outcome != upstream.OutcomeSuccess {
		metrics.ApplicationSubmissions.WithLabelValues("failure").Inc()
		message := result.Message
		if message == "" {
			message = "Failed to submit the application."
		}
		flashResultFailure(c, message, result.Err)
		render(c, http.StatusOK, "applicants/public_apply.html", gin.H{
			"Matchmakers":          matchmakers,
			"SelectedMatchmakerID": selected,
			"Form":                 form,
		})
		return
	}

	metrics.ApplicationSubmissions.WithLabelValues("success").Inc()
	AddFlash(c, "success", "Application submitted successfully!")
	c.Redirect(http.StatusFound, "/")
}

// readPicture extracts the optional picture attachment from the multipart
// form and validates it against the upload limits. A missing picture is not
// an error.
func (h *ApplyHandler) readPicture(c *gin.Context) (*upstream.Picture, error) {
	header, err := c.FormFile("picture")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		// Multipart forms without any file part also land here
		return nil, nil
	}

	if err := storage.ValidateImage(header.Filename, header.Size); err != nil {
		return nil, fmt.Errorf("picture rejected: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("could not read the uploaded picture")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read the uploaded picture")
	}

	return &upstream.Picture{
		FileName:    header.Filename,
		ContentType: storage.ContentTypeFor(header.Filename),
		Data:        data,
	}, nil
}

func preselectedMatchmaker(c *gin.Context) int {
	raw := c.Param("matchmakerID")
	if raw == "" {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// DirectorySource adapts the upstream client to the directory cache.
type DirectorySource struct {
	api *upstream.Client
}

// NewDirectorySource creates a directory source backed by the upstream API.
func NewDirectorySource(api *upstream.Client) *DirectorySource {
	return &DirectorySource{api: api}
}

// FetchMatchmakers fetches and normalizes the public matchmaker directory.
func (s *DirectorySource) FetchMatchmakers(ctx context.Context) ([]models.Matchmaker, error) {
	result := s.api.ListMatchmakers(ctx)
	if result.Outcome != upstream.OutcomeSuccess {
		if result.Err != nil {
			return nil, result.Err
		}
		return nil, fmt.Errorf("matchmaker directory fetch rejected: %s", result.Message)
	}
	return normalize.Matchmakers(result.Decode()), nil
}
