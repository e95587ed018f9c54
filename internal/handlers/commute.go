package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/vehicle-cost-advisor/internal/commute"
	"github.com/ukydev/vehicle-cost-advisor/internal/db"
)

// CommuteHandler serves commute cost scenarios.
type CommuteHandler struct {
	vehicles  db.VehicleStore
	commutes  db.CommuteStore
	estimator *commute.Estimator
}

// NewCommuteHandler creates a new commute handler.
func NewCommuteHandler(vehicles db.VehicleStore, commutes db.CommuteStore, estimator *commute.Estimator) *CommuteHandler {
	return &CommuteHandler{vehicles: vehicles, commutes: commutes, estimator: estimator}
}

// Create handles POST /api/vehicles/{id}/commute: computes and persists a
// scenario for the vehicle.
func (h *CommuteHandler) Create(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.vehicles, w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req commute.Request
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	scenario, err := h.estimator.Estimate(r.Context(), vehicle, req)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := h.commutes.InsertCommute(r.Context(), *scenario)
	if err != nil {
		log.WithError(err).Error("Failed to insert commute scenario")
		writeError(w, err)
		return
	}

	created, err := h.commutes.FindCommuteByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/vehicles/{id}/commute.
func (h *CommuteHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.vehicles, w, r)
	if !ok {
		return
	}

	scenarios, err := h.commutes.FindCommutesByVehicle(r.Context(), vehicle.ID.Hex())
	if err != nil {
		log.WithError(err).Error("Failed to list commute scenarios")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// Delete handles DELETE /api/commutes/{id}. Ownership is checked through
// the scenario's vehicle.
func (h *CommuteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.commutes.FindCommuteByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), scenario.VehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	claims, ok := middlewareClaims(w, r)
	if !ok {
		return
	}
	if vehicle.OwnerID != claims.UserID {
		http.Error(w, db.ErrScenarioNotFound.Error(), http.StatusNotFound)
		return
	}

	if err := h.commutes.DeleteCommute(r.Context(), scenario.ID.Hex()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
