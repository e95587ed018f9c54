package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommuteScenario is a user-submitted job-location scenario with its
// computed fuel costs. Read-only after creation except for deletion.
type CommuteScenario struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID        string             `bson:"vehicle_id" json:"vehicle_id"`
	Destination      string             `bson:"destination" json:"destination"`
	DistanceMiles    float64            `bson:"distance_miles" json:"distance_miles"`
	WorkDaysPerMonth int                `bson:"work_days_per_month" json:"work_days_per_month"`
	DailyCost        float64            `bson:"daily_cost" json:"daily_cost"`
	MonthlyCost      float64            `bson:"monthly_cost" json:"monthly_cost"`
	AnnualCost       float64            `bson:"annual_cost" json:"annual_cost"`
	FuelPriceUsed    float64            `bson:"fuel_price_used" json:"fuel_price_used"`
	MPGUsed          float64            `bson:"mpg_used" json:"mpg_used"`
	Region           string             `bson:"region" json:"region"`
	Degraded         bool               `bson:"degraded" json:"degraded,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}
