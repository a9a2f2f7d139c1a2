package vehicle_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/vehicles", CreateVehicle)
	r.GET("/vehicles/:id", GetVehicleByID)
	r.PATCH("/vehicles/:id", UpdateVehicle)
	r.DELETE("/vehicles/:id", DeleteVehicle)
	r.GET("/vehicles/:id/parts", GetVehicleParts)
	return r
}

func do(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, models.ApiResponse) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp models.ApiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestVehicleHandlers_RejectInvalidID(t *testing.T) {
	r := newRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/vehicles/not-a-uuid"},
		{http.MethodPatch, "/vehicles/not-a-uuid"},
		{http.MethodDelete, "/vehicles/not-a-uuid"},
		{http.MethodGet, "/vehicles/not-a-uuid/parts"},
	} {
		w, resp := do(r, tc.method, tc.path, map[string]any{"brand": "Fiat"})
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
		assert.True(t, resp.Error)
		assert.Equal(t, "Invalid vehicle ID", resp.Message)
	}
}

func TestCreateVehicle_Validation(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing brand", map[string]any{"internal_id": "RF-1", "model": "Palio", "year": 2012}},
		{"year out of range", map[string]any{"internal_id": "RF-1", "brand": "Fiat", "model": "Palio", "year": 1800}},
		{"negative mileage", map[string]any{"internal_id": "RF-1", "brand": "Fiat", "model": "Palio", "year": 2012, "mileage": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(r, http.MethodPost, "/vehicles", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, resp.Message, "Invalid request")
		})
	}
}

func TestUpdateVehicle_EmptyBody(t *testing.T) {
	w, resp := do(newRouter(), http.MethodPatch, "/vehicles/0190a1b2-0000-7000-8000-000000000001", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", resp.Message)
}

func TestUpdateVehicleRequest_Updates(t *testing.T) {
	brand, year := "VW", 2010
	updates := models.UpdateVehicleRequest{Brand: &brand, Year: &year}.Updates()

	assert.Equal(t, map[string]interface{}{"brand": "VW", "year": 2010}, updates)
}
