package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ukydev/vehicle-cost-advisor/internal/db"
	"github.com/ukydev/vehicle-cost-advisor/internal/middleware"
	"github.com/ukydev/vehicle-cost-advisor/internal/models"
)

func middlewareClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP statuses. Validation and
// insufficient-data failures are expected outcomes and carry structured
// bodies the UI can act on.
func writeError(w http.ResponseWriter, err error) {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "validation_failed",
			"validation": validation,
		})
		return
	}

	var insufficient *models.InsufficientDataError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":             "insufficient_data",
			"insufficient_data": insufficient,
		})
		return
	}

	if errors.Is(err, db.ErrVehicleNotFound) || errors.Is(err, db.ErrScenarioNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
