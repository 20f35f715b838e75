package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(config CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/api/admin/events", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig("https://admin.beout.app"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req.Header.Set("Origin", "https://admin.beout.app")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://admin.beout.app", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig("https://admin.beout.app"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	router := newCORSRouter(DefaultCORSConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
