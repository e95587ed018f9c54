package maintenance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

// Predictor produces dated, costed maintenance forecasts. All inputs are
// immutable reference tables plus the caller's vehicle, so predictions are
// deterministic for a fixed vehicle state and clock reading.
type Predictor struct {
	resolver *region.Resolver
	pricing  *region.PricingTable
	schedule *Schedule
	now      func() time.Time
}

// NewPredictor wires a predictor over the shared reference components.
func NewPredictor(resolver *region.Resolver, pricing *region.PricingTable, schedule *Schedule) *Predictor {
	return &Predictor{
		resolver: resolver,
		pricing:  pricing,
		schedule: schedule,
		now:      time.Now,
	}
}

// Predict forecasts upcoming maintenance for a vehicle over the horizon.
//
// A vehicle without an odometer reading yields an InsufficientDataError
// alongside a forecast that still carries whatever age-based predictions
// could be computed, so the caller can show partial results while
// prompting for profile completion. A zip code that cannot be resolved
// does not fail the forecast: it falls back to national-average pricing
// with the Degraded flag set.
func (p *Predictor) Predict(vehicle *models.Vehicle, horizonMonths int, includePast bool) (*models.Forecast, error) {
	if horizonMonths <= 0 {
		return nil, &models.ValidationError{Field: "horizon_months", Reason: "must be > 0"}
	}

	assignment := p.resolver.Resolve(vehicle.ZipCode)
	multiplier := p.pricing.MultiplierFor(assignment.Region)

	now := p.now().UTC()
	forecast := &models.Forecast{
		VehicleID:     vehicle.ID.Hex(),
		Region:        assignment,
		Multiplier:    multiplier,
		HorizonMonths: horizonMonths,
		// Out-of-range is an accurate answer; only a failed lookup
		// degrades confidence in the pricing applied below.
		Degraded:    !assignment.Matched && assignment.Reason != region.ReasonOutOfRange,
		Predictions: []models.MaintenancePrediction{},
	}

	mileage := 0
	var insufficient error
	if vehicle.CurrentMileage == nil {
		insufficient = &models.InsufficientDataError{Missing: "current_mileage"}
	} else {
		mileage = *vehicle.CurrentMileage
	}

	monthlyMiles := vehicle.MonthlyMiles
	if insufficient != nil {
		// Without an odometer baseline, mileage projections are
		// meaningless; keep the age-driven ones only.
		monthlyMiles = 0
	}

	horizonEnd := now.AddDate(0, horizonMonths, 0)
	for _, c := range p.schedule.DueEvents(mileage, vehicle.AgeMonths(now), monthlyMiles, now) {
		if c.PredictedDate.After(horizonEnd) {
			continue
		}
		if !includePast && c.PredictedDate.Before(now) {
			continue
		}
		forecast.Predictions = append(forecast.Predictions, models.MaintenancePrediction{
			VehicleID:        forecast.VehicleID,
			ServiceType:      c.Event.ServiceType,
			PredictedDate:    c.PredictedDate,
			PredictedMileage: c.PredictedMileage,
			EstimatedCost:    regionalCost(c.Event.BaseCost, multiplier),
			Probability:      c.Event.Probability,
			Routine:          c.Event.Routine,
			GeneratedAt:      now,
		})
	}

	return forecast, insufficient
}

// regionalCost applies the region multiplier to a national base cost and
// rounds once to whole cents.
func regionalCost(baseCost, multiplier float64) float64 {
	cost := decimal.NewFromFloat(baseCost).Mul(decimal.NewFromFloat(multiplier)).Round(2)
	f, _ := cost.Float64()
	return f
}
