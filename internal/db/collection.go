package db

import (
	"context"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
)

// VehicleStore defines the interface for vehicle persistence.
type VehicleStore interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehiclesByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	RecordMileage(ctx context.Context, id string, mileage int) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
}

// CommuteStore defines the interface for commute scenario persistence.
// Scenarios are immutable after creation; there is no update operation.
type CommuteStore interface {
	InsertCommute(ctx context.Context, scenario models.CommuteScenario) (string, error)
	FindCommuteByID(ctx context.Context, id string) (*models.CommuteScenario, error)
	FindCommutesByVehicle(ctx context.Context, vehicleID string) ([]models.CommuteScenario, error)
	DeleteCommute(ctx context.Context, id string) error
}
