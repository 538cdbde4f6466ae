package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shidduch-link/matchmaker-web/pkg/storage"
)

// testStorageClient builds a storage client pointed at a dead endpoint. The
// validation gates reject before any request would reach it.
func testStorageClient(t *testing.T) *storage.Client {
	t.Helper()
	client, err := storage.NewClient("key", "secret", "pictures", "http://storage.invalid", "us-east-1")
	require.NoError(t, err)
	return client
}

// The happy path needs live object storage; these tests cover the local
// validation gates, which must reject before any byte leaves the process.

func TestUploadPictureMissingFile(t *testing.T) {
	handler := NewUploadHandler(newUpstreamClient("http://unused"), testStorageClient(t))
	router := newTestRouter(t)
	router.POST("/api/upload-picture", asPrincipal(testPrincipal()), handler.UploadPicture)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload-picture", http.NoBody)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No picture file provided")
}

func TestUploadPictureRejectsBadExtension(t *testing.T) {
	handler := NewUploadHandler(newUpstreamClient("http://unused"), testStorageClient(t))
	router := newTestRouter(t)
	router.POST("/api/upload-picture", asPrincipal(testPrincipal()), handler.UploadPicture)

	w := httptest.NewRecorder()
	req := multipartRequest(t, "/api/upload-picture", nil, "script.exe")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPictureDisabledWithoutStorage(t *testing.T) {
	handler := NewUploadHandler(newUpstreamClient("http://unused"), nil)
	router := newTestRouter(t)
	router.POST("/api/upload-picture", asPrincipal(testPrincipal()), handler.UploadPicture)

	w := httptest.NewRecorder()
	req := multipartRequest(t, "/api/upload-picture", nil, "face.png")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Picture uploads are disabled")
}
