package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
	"github.com/shidduch-link/matchmaker-web/pkg/metrics"
	"github.com/shidduch-link/matchmaker-web/pkg/storage"
)

// UploadHandler accepts profile picture uploads, stores them in object
// storage and forwards the resulting URL upstream as profile data.
type UploadHandler struct {
	api     *upstream.Client
	storage *storage.Client
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(api *upstream.Client, storageClient *storage.Client) *UploadHandler {
	return &UploadHandler{api: api, storage: storageClient}
}

// UploadPicture handles POST /api/upload-picture
// Validates the file locally (extension allow-list, size cap) before any
// byte leaves the process.
func (h *UploadHandler) UploadPicture(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	if h.storage == nil {
		metrics.PictureUploads.WithLabelValues("disabled").Inc()
		respondError(c, http.StatusServiceUnavailable, "Picture uploads are disabled", nil)
		return
	}

	header, err := c.FormFile("picture")
	if err != nil {
		metrics.PictureUploads.WithLabelValues("missing_file").Inc()
		respondError(c, http.StatusBadRequest, "No picture file provided", err)
		return
	}

	if err := storage.ValidateImage(header.Filename, header.Size); err != nil {
		metrics.PictureUploads.WithLabelValues("rejected").Inc()
		respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := header.Open()
	if err != nil {
		metrics.PictureUploads.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, "Could not read the uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.PictureUploads.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, "Could not read the uploaded file", err)
		return
	}

	key := storage.ObjectKey(header.Filename)
	url, err := h.storage.UploadImage(c.Request.Context(), data, key, storage.ContentTypeFor(header.Filename))
	if err != nil {
		metrics.PictureUploads.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, "Could not store the uploaded file", err)
		return
	}

	result := h.api.SetProfilePicture(c.Request.Context(), p.Token, url)
	if result.Outcome != upstream.OutcomeSuccess {
		metrics.PictureUploads.WithLabelValues("upstream_failure").Inc()
		attachError(c, result.Err)
		// The picture is stored; the profile link just didn't stick.
		c.JSON(http.StatusOK, gin.H{
			"url":     url,
			"warning": "Picture stored but the profile could not be updated",
		})
		return
	}

	metrics.PictureUploads.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"url": url})
}
