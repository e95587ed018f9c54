package models

import "time"

// MaintenanceEventType describes a scheduled service category: when it
// recurs and what it costs nationally before regional adjustment.
type MaintenanceEventType struct {
	ServiceType      string  `json:"service_type"`
	MileageInterval  int     `json:"mileage_interval,omitempty"`
	AgeIntervalMonth int     `json:"age_interval_months,omitempty"`
	BaseCost         float64 `json:"base_cost"`
	Probability      float64 `json:"probability"`
	Routine          bool    `json:"routine"`
}

// MaintenancePrediction is one projected upcoming service for a vehicle.
// Predictions are regenerated on demand; they are estimates, not records.
type MaintenancePrediction struct {
	VehicleID        string    `bson:"vehicle_id" json:"vehicle_id"`
	ServiceType      string    `bson:"service_type" json:"service_type"`
	PredictedDate    time.Time `bson:"predicted_date" json:"predicted_date"`
	PredictedMileage int       `bson:"predicted_mileage" json:"predicted_mileage"`
	EstimatedCost    float64   `bson:"estimated_cost" json:"estimated_cost"`
	Probability      float64   `bson:"probability" json:"probability"`
	Routine          bool      `bson:"routine" json:"routine"`
	GeneratedAt      time.Time `bson:"generated_at" json:"generated_at"`
}

// Forecast bundles a vehicle's predictions with the region context they
// were priced under.
type Forecast struct {
	VehicleID     string                  `json:"vehicle_id"`
	Region        RegionAssignment        `json:"region"`
	Multiplier    float64                 `json:"multiplier"`
	HorizonMonths int                     `json:"horizon_months"`
	Degraded      bool                    `json:"degraded,omitempty"`
	Predictions   []MaintenancePrediction `json:"predictions"`
}
