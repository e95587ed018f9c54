package handlers

import (
	"net/http"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

// RegionHandler exposes region assignment probes.
type RegionHandler struct {
	resolver *region.Resolver
	pricing  *region.PricingTable
}

// NewRegionHandler creates a new region handler.
func NewRegionHandler(resolver *region.Resolver, pricing *region.PricingTable) *RegionHandler {
	return &RegionHandler{resolver: resolver, pricing: pricing}
}

// ResolveResponse pairs a region assignment with the multiplier that would
// apply under it.
type ResolveResponse struct {
	Assignment models.RegionAssignment `json:"assignment"`
	Multiplier float64                 `json:"multiplier"`
}

// Resolve handles GET /api/regions/resolve?zip=NNNNN.
func (h *RegionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	if zip == "" {
		writeError(w, &models.ValidationError{Field: "zip", Reason: "is required"})
		return
	}

	assignment := h.resolver.Resolve(zip)
	writeJSON(w, http.StatusOK, ResolveResponse{
		Assignment: assignment,
		Multiplier: h.pricing.MultiplierFor(assignment.Region),
	})
}
