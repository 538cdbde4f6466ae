package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeAnonymousSkipsUpstream(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	handler := NewHomeHandler(newUpstreamClient(server.URL + "/api"))
	router := newTestRouter(t)
	router.GET("/", handler.Index)

	w := doRequest(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, called)
}

func TestHomeAuthenticatedFetchesStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/matchmaker/stats", r.URL.Path)
		assert.Equal(t, "Bearer api-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"applicants":12,"matches":4,"recent":2}`))
	}))
	defer server.Close()

	handler := NewHomeHandler(newUpstreamClient(server.URL + "/api"))
	router := newTestRouter(t)
	router.GET("/", asPrincipal(testPrincipal()), handler.Index)

	w := doRequest(router, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHomeStatsFailureFallsBackSilently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	handler := NewHomeHandler(newUpstreamClient(server.URL + "/api"))
	router := newTestRouter(t)
	router.GET("/", asPrincipal(testPrincipal()), handler.Index)

	w := doRequest(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	// No flash cookie: home page stat failures stay silent
	for _, cookie := range w.Result().Cookies() {
		assert.NotEqual(t, "matchmaker_flash", cookie.Name)
	}
}
