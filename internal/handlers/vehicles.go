package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/vehicle-cost-advisor/internal/db"
	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

// VehicleHandler handles vehicle registration and profile requests.
type VehicleHandler struct {
	store    db.VehicleStore
	resolver *region.Resolver
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(store db.VehicleStore, resolver *region.Resolver) *VehicleHandler {
	return &VehicleHandler{store: store, resolver: resolver}
}

// Create handles vehicle registration. The vehicle's region assignment is
// computed at registration time from its zip code.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewareClaims(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	vehicle.ID = primitive.NilObjectID
	vehicle.OwnerID = claims.UserID

	if err := vehicle.Validate(); err != nil {
		writeError(w, err)
		return
	}

	assignment := h.resolver.Resolve(vehicle.ZipCode)
	vehicle.Region = assignment.Region

	id, err := h.store.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		log.WithError(err).Error("Failed to insert vehicle")
		writeError(w, err)
		return
	}

	created, err := h.store.FindVehicleByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List returns the caller's vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewareClaims(w, r)
	if !ok {
		return
	}

	vehicles, err := h.store.FindVehiclesByOwner(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to list vehicles")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get returns one vehicle owned by the caller.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.store, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Update replaces a vehicle's profile fields. The odometer is not updated
// here: mileage changes go through Checkin so the monotonic guard applies.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.store, w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var update models.Vehicle
	if err := json.Unmarshal(body, &update); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	update.ID = vehicle.ID
	update.OwnerID = vehicle.OwnerID
	update.CurrentMileage = vehicle.CurrentMileage
	update.CreatedAt = vehicle.CreatedAt
	if err := update.Validate(); err != nil {
		writeError(w, err)
		return
	}
	update.Region = h.resolver.Resolve(update.ZipCode).Region

	if err := h.store.UpdateVehicle(r.Context(), vehicle.ID.Hex(), update); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// Checkin records a new odometer reading.
func (h *VehicleHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.store, w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req struct {
		Mileage int `json:"mileage"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.store.RecordMileage(r.Context(), vehicle.ID.Hex(), req.Mileage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a vehicle and everything it owns.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := ownedVehicle(h.store, w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteVehicle(r.Context(), vehicle.ID.Hex()); err != nil {
		log.WithError(err).Error("Failed to delete vehicle")
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedVehicle loads the path vehicle and enforces ownership. Vehicles
// belonging to other users read as not found.
func ownedVehicle(store db.VehicleStore, w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	claims, ok := middlewareClaims(w, r)
	if !ok {
		return nil, false
	}

	vehicle, err := store.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if vehicle.OwnerID != claims.UserID {
		http.Error(w, db.ErrVehicleNotFound.Error(), http.StatusNotFound)
		return nil, false
	}
	return vehicle, true
}
