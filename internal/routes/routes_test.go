package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/01moynul/fashionhub/internal/auth"
	"github.com/01moynul/fashionhub/internal/email"
	"github.com/01moynul/fashionhub/internal/handlers"
	"github.com/01moynul/fashionhub/internal/middleware"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	uploads  string
	frontend string
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter, trusted ...string) testServer {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uploads, frontend := t.TempDir(), t.TempDir()
	h := &handlers.Handlers{DB: db, Mailer: email.NewLogNotifier(zerolog.Nop()), Log: zerolog.Nop()}
	r := SetupRouter(h, Options{
		Logger:      zerolog.Nop(),
		Tokens:      auth.NewIssuer("test-secret", 0),
		Limiter:     limiter,
		UploadDir:   uploads,
		FrontendDir: frontend,

		TrustedProxies: trusted,
	})
	return testServer{router: r, uploads: uploads, frontend: frontend}
}

func (s testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestUnknownAPIRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.get("/api/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"API route /api/nope not found"}`, w.Body.String())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/admin/orders", "/api/admin/products", "/api/admin/contact-messages"} {
		w := s.get(path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUploadsServedWithCacheHeaders(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(s.uploads, "products"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.uploads, "products", "a.png"), []byte("png"), 0o644))

	w := s.get("/uploads/products/a.png")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSPAFallback(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.get("/collections/summer")
	assert.Equal(t, http.StatusNotFound, w.Code, "no build yet")

	require.NoError(t, os.WriteFile(filepath.Join(s.frontend, "index.html"), []byte("<html>shop</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.frontend, "app.js"), []byte("console.log(1)"), 0o644))

	w = s.get("/collections/summer")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shop")

	w = s.get("/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = s.get("/../../etc/passwd")
	assert.NotContains(t, w.Body.String(), "root:")
}

func TestSubmissionsAreRateLimited(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.001, 1))

	first := httptest.NewRecorder()
	s.router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, http.StatusBadRequest, first.Code, "empty body reaches the handler")

	second := httptest.NewRecorder()
	s.router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func postLogins(s testServer, n int) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	return codes
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.0001, 1))

	codes := postLogins(s, 5)

	assert.Equal(t, []int{400, 429, 429, 429, 429}, codes)
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.0001, 1), "203.0.113.0/24")

	codes := postLogins(s, 3)

	assert.Equal(t, []int{400, 400, 400}, codes, "each forwarded client gets its own bucket")
}
