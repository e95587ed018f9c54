package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Vehicle represents a user-registered vehicle. CurrentMileage is a
// pointer because a freshly registered profile may not carry an odometer
// reading yet; mileage-based forecasting requires one.
type Vehicle struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID        string             `bson:"owner_id" json:"owner_id"`
	Year           int                `bson:"year" json:"year"`
	Make           string             `bson:"make" json:"make"`
	Model          string             `bson:"model" json:"model"`
	Trim           string             `bson:"trim,omitempty" json:"trim,omitempty"`
	CurrentMileage *int               `bson:"current_mileage,omitempty" json:"current_mileage,omitempty"`
	MonthlyMiles   int                `bson:"monthly_miles" json:"monthly_miles"`
	MPG            float64            `bson:"mpg" json:"mpg"`
	ZipCode        string             `bson:"zip_code" json:"zip_code"`
	Region         string             `bson:"region,omitempty" json:"region,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks the fields a vehicle must carry at registration time.
func (v *Vehicle) Validate() error {
	if v.Year < 1900 || v.Year > time.Now().Year()+1 {
		return &ValidationError{Field: "year", Reason: "must be a plausible model year"}
	}
	if v.Make == "" {
		return &ValidationError{Field: "make", Reason: "is required"}
	}
	if v.Model == "" {
		return &ValidationError{Field: "model", Reason: "is required"}
	}
	if v.CurrentMileage != nil && *v.CurrentMileage < 0 {
		return &ValidationError{Field: "current_mileage", Reason: "must be >= 0"}
	}
	if v.MonthlyMiles < 0 {
		return &ValidationError{Field: "monthly_miles", Reason: "must be >= 0"}
	}
	if v.MPG < 0 {
		return &ValidationError{Field: "mpg", Reason: "must be >= 0"}
	}
	if !zipPattern.MatchString(v.ZipCode) {
		return &ValidationError{Field: "zip_code", Reason: "must be a 5-digit zip code"}
	}
	return nil
}

// ApplyMileage records a new odometer reading. The odometer is monotonic:
// a reading below the last recorded value is rejected, never stored.
func (v *Vehicle) ApplyMileage(mileage int) error {
	if mileage < 0 {
		return &ValidationError{Field: "current_mileage", Reason: "must be >= 0"}
	}
	if v.CurrentMileage != nil && mileage < *v.CurrentMileage {
		return &ValidationError{Field: "current_mileage", Reason: "odometer reading lower than last recorded value"}
	}
	v.CurrentMileage = &mileage
	return nil
}

// AgeMonths returns the vehicle's age in whole months at the given time,
// counted from January 1 of its model year.
func (v *Vehicle) AgeMonths(now time.Time) int {
	built := time.Date(v.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if now.Before(built) {
		return 0
	}
	return int(now.Year()-built.Year())*12 + int(now.Month()-built.Month())
}
