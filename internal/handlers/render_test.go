package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundtrip(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/set", func(c *gin.Context) {
		AddFlash(c, "success", "It worked!")
		c.Status(http.StatusOK)
	})

	var popped []Flash
	router.GET("/pop", func(c *gin.Context) {
		popped = PopFlashes(c)
		c.Status(http.StatusOK)
	})

	w := doRequest(router, http.MethodGet, "/set")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", http.NoBody)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w2, req)

	require.Len(t, popped, 1)
	assert.Equal(t, "success", popped[0].Category)
	assert.Equal(t, "It worked!", popped[0].Message)

	// Pop clears the cookie
	var cleared bool
	for _, cookie := range w2.Result().Cookies() {
		if cookie.Name == flashCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopFlashesSeesSameRequestFlash(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/page", func(c *gin.Context) {
		AddFlash(c, "danger", "Invalid credentials")
		popped := PopFlashes(c)
		require.Len(t, popped, 1)
		assert.Equal(t, "Invalid credentials", popped[0].Message)
		c.Status(http.StatusOK)
	})

	w := doRequest(router, http.MethodGet, "/page")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPopFlashesIgnoresGarbageCookie(t *testing.T) {
	router := newTestRouter(t)
	router.GET("/pop", func(c *gin.Context) {
		assert.Empty(t, PopFlashes(c))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", http.NoBody)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "%%%not-base64%%%"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
