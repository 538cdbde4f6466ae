package handlers

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/middleware"
	"github.com/shidduch-link/matchmaker-web/internal/principal"
	"github.com/shidduch-link/matchmaker-web/internal/upstream"
	"github.com/shidduch-link/matchmaker-web/pkg/httpclient"
	"github.com/shidduch-link/matchmaker-web/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pageTemplates = []string{
	"index.html",
	"auth/login.html", "auth/register.html", "auth/reset_password.html",
	"users/index.html", "users/create.html", "users/view.html", "users/edit.html",
	"matches/index.html", "matches/user_matches.html",
	"matches/compatibility.html", "matches/all_matches.html",
	"applicants/public_apply.html",
	"profile/view.html",
}

// newTestRouter builds a gin engine with stub templates so render() has a
// target for every page name.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	tmpl := template.New("pages")
	for _, name := range pageTemplates {
		template.Must(tmpl.New(name).Parse(name))
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	return router
}

func newUpstreamClient(baseURL string) *upstream.Client {
	return upstream.NewClient(baseURL, httpclient.NewStandardClient(2*time.Second), 2*time.Second)
}

func testBridge(t *testing.T) *principal.Bridge {
	t.Helper()
	tokens := jwt.NewTokenManager("handler-test-secret-0123456789abcdef", "matchmaker-web", 1)
	return principal.NewBridge(tokens, "", false)
}

// asPrincipal injects a signed-in matchmaker into the request context,
// standing in for the session middleware.
func asPrincipal(p *principal.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.PrincipalContextKey, p)
		c.Next()
	}
}

func testPrincipal() *principal.Principal {
	return &principal.Principal{ID: "5", Email: "m@example.com", Name: "Miriam", Token: "api-token"}
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)
	router.ServeHTTP(w, req)
	return w
}
