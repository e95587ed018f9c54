package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

func testRegionHandler(t *testing.T) *RegionHandler {
	t.Helper()
	tables := handlerTables()
	resolver, err := region.NewResolver(tables, 16)
	assert.NoError(t, err)
	return NewRegionHandler(resolver, region.NewPricingTable(tables))
}

func TestRegionHandler_Resolve(t *testing.T) {
	handler := testRegionHandler(t)

	t.Run("known zip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/resolve?zip=63101", nil)
		w := httptest.NewRecorder()

		handler.Resolve(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp ResolveResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "St. Louis", resp.Assignment.Region)
		assert.True(t, resp.Assignment.Matched)
		assert.Equal(t, 0.95, resp.Multiplier)
	})

	t.Run("unknown zip falls back", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/resolve?zip=99999", nil)
		w := httptest.NewRecorder()

		handler.Resolve(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp ResolveResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.NationalAverage, resp.Assignment.Region)
		assert.False(t, resp.Assignment.Matched)
		assert.Equal(t, 1.0, resp.Multiplier)
	})

	t.Run("missing zip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/resolve", nil)
		w := httptest.NewRecorder()

		handler.Resolve(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
