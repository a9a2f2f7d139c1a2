package api_routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	SetupAuthRoutes(api)
	SetupVehicleRoutes(api)
	SetupPartRoutes(api)
	return r
}

func TestRoutes_Registered(t *testing.T) {
	want := map[string]bool{
		"POST /api/v1/auth/login":         true,
		"POST /api/v1/auth/logout":        true,
		"GET /api/v1/auth/me":             true,
		"GET /api/v1/vehicles":            true,
		"POST /api/v1/vehicles":           true,
		"GET /api/v1/vehicles/:id":        true,
		"PATCH /api/v1/vehicles/:id":      true,
		"DELETE /api/v1/vehicles/:id":     true,
		"GET /api/v1/vehicles/:id/parts":  true,
		"GET /api/v1/parts":               true,
		"GET /api/v1/parts/stats":         true,
		"GET /api/v1/parts/:id":           true,
		"GET /api/v1/parts/:id/label":     true,
		"POST /api/v1/parts":              true,
		"PATCH /api/v1/parts/:id":         true,
		"DELETE /api/v1/parts/:id":        true,
		"POST /api/v1/parts/price-lookup": true,
		"POST /api/v1/parts/:id/process":  true,
	}

	got := map[string]bool{}
	for _, route := range newRouter().Routes() {
		got[route.Method+" "+route.Path] = true
	}
	assert.Equal(t, want, got)
}

func TestRoutes_MutationsRequireAuth(t *testing.T) {
	r := newRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/vehicles"},
		{http.MethodPatch, "/api/v1/vehicles/0190a5f4-8f3e-7c6b-9a1d-2b3c4d5e6f70"},
		{http.MethodDelete, "/api/v1/parts/0190a5f4-8f3e-7c6b-9a1d-2b3c4d5e6f70"},
		{http.MethodPost, "/api/v1/parts/price-lookup"},
		{http.MethodPost, "/api/v1/parts/0190a5f4-8f3e-7c6b-9a1d-2b3c4d5e6f70/process"},
		{http.MethodGet, "/api/v1/auth/me"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
