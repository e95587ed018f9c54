package handlers

import (
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-cost-advisor/internal/db"
	"github.com/ukydev/vehicle-cost-advisor/internal/maintenance"
	"github.com/ukydev/vehicle-cost-advisor/internal/models"
)

const defaultHorizonMonths = 12

// ForecastHandler serves maintenance cost forecasts.
type ForecastHandler struct {
	vehicles  db.VehicleStore
	predictor *maintenance.Predictor
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(vehicles db.VehicleStore, predictor *maintenance.Predictor) *ForecastHandler {
	return &ForecastHandler{vehicles: vehicles, predictor: predictor}
}

// ForecastResponse wraps a forecast with the profile-completion hint when
// mileage data was missing. Partial age-based predictions are still
// delivered in that case.
type ForecastResponse struct {
	Forecast         *models.Forecast              `json:"forecast"`
	InsufficientData *models.InsufficientDataError `json:"insufficient_data,omitempty"`
}

// Forecast handles GET /api/vehicles/{id}/forecast.
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.vehicles, w, r)
	if !ok {
		return
	}

	horizon := defaultHorizonMonths
	if raw := r.URL.Query().Get("horizon_months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, &models.ValidationError{Field: "horizon_months", Reason: "must be an integer"})
			return
		}
		horizon = parsed
	}
	includePast := r.URL.Query().Get("include_past") == "true"

	forecast, err := h.predictor.Predict(vehicle, horizon, includePast)
	if err != nil {
		var insufficient *models.InsufficientDataError
		if errors.As(err, &insufficient) {
			// Recoverable: ship the partial forecast with the hint.
			writeJSON(w, http.StatusOK, ForecastResponse{Forecast: forecast, InsufficientData: insufficient})
			return
		}
		log.WithError(err).Error("Failed to generate forecast")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ForecastResponse{Forecast: forecast})
}
