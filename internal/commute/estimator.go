// Package commute computes fuel costs for user-submitted job-location
// scenarios.
package commute

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/region"
)

const (
	// DefaultFuelPricePerGallon is the documented national-average fallback
	// used when neither the caller, a live source, nor the regional table
	// can supply a price.
	DefaultFuelPricePerGallon = 3.50

	// fuelLookupTimeout caps how long a live price lookup may block the
	// estimate before falling back.
	fuelLookupTimeout = 2 * time.Second
)

// FuelPriceSource is an external gas-price service. Implementations may
// block on I/O; the estimator enforces its own timeout.
type FuelPriceSource interface {
	FuelPrice(ctx context.Context, regionName string) (float64, error)
}

// Request is one commute scenario to be priced. FuelPricePerGallon
// overrides every lookup when supplied.
type Request struct {
	Destination        string   `json:"destination"`
	DistanceMiles      float64  `json:"distance_miles"`
	WorkDaysPerMonth   int      `json:"work_days_per_month"`
	FuelPricePerGallon *float64 `json:"fuel_price_per_gallon,omitempty"`
}

// Estimator computes commute scenarios. Stateless apart from the injected
// reference components; safe for concurrent use.
type Estimator struct {
	resolver *region.Resolver
	pricing  *region.PricingTable
	source   FuelPriceSource
	now      func() time.Time
}

// NewEstimator wires an estimator. source may be nil when no live
// gas-price service is configured.
func NewEstimator(resolver *region.Resolver, pricing *region.PricingTable, source FuelPriceSource) *Estimator {
	return &Estimator{
		resolver: resolver,
		pricing:  pricing,
		source:   source,
		now:      time.Now,
	}
}

// Estimate prices a round-trip commute for the vehicle. Validation
// failures name the offending field. A failing live fuel-price source or
// an unlocatable zip never fails the estimate: the result falls back to
// reference pricing and carries Degraded=true instead.
func (e *Estimator) Estimate(ctx context.Context, vehicle *models.Vehicle, req Request) (*models.CommuteScenario, error) {
	if req.DistanceMiles <= 0 {
		return nil, &models.ValidationError{Field: "distance_miles", Reason: "must be > 0"}
	}
	if vehicle.MPG <= 0 {
		return nil, &models.ValidationError{Field: "mpg", Reason: "must be > 0"}
	}
	if req.WorkDaysPerMonth < 0 || req.WorkDaysPerMonth > 31 {
		return nil, &models.ValidationError{Field: "work_days_per_month", Reason: "must be in [0, 31]"}
	}
	if req.FuelPricePerGallon != nil && *req.FuelPricePerGallon < 0 {
		return nil, &models.ValidationError{Field: "fuel_price_per_gallon", Reason: "must be >= 0"}
	}

	assignment := e.resolver.Resolve(vehicle.ZipCode)
	price, degraded := e.fuelPrice(ctx, assignment.Region, req.FuelPricePerGallon)
	// A zip that could not be located at all means the estimate runs on
	// fallback pricing without knowing the vehicle's market. Out-of-range is
	// an accurate answer and does not degrade.
	if !assignment.Matched && assignment.Reason != region.ReasonOutOfRange {
		degraded = true
	}

	// Round-trip gallons per day times price, rounded to cents at each
	// display boundary so the monthly and annual figures compose from the
	// daily one exactly as shown to the user.
	daily := decimal.NewFromFloat(req.DistanceMiles).
		Mul(decimal.NewFromInt(2)).
		Div(decimal.NewFromFloat(vehicle.MPG)).
		Mul(decimal.NewFromFloat(price)).
		Round(2)
	monthly := daily.Mul(decimal.NewFromInt(int64(req.WorkDaysPerMonth))).Round(2)
	annual := monthly.Mul(decimal.NewFromInt(12)).Round(2)

	dailyF, _ := daily.Float64()
	monthlyF, _ := monthly.Float64()
	annualF, _ := annual.Float64()

	return &models.CommuteScenario{
		VehicleID:        vehicle.ID.Hex(),
		Destination:      req.Destination,
		DistanceMiles:    req.DistanceMiles,
		WorkDaysPerMonth: req.WorkDaysPerMonth,
		DailyCost:        dailyF,
		MonthlyCost:      monthlyF,
		AnnualCost:       annualF,
		FuelPriceUsed:    price,
		MPGUsed:          vehicle.MPG,
		Region:           assignment.Region,
		Degraded:         degraded,
		CreatedAt:        e.now().UTC(),
	}, nil
}

// fuelPrice resolves the price per gallon: caller override, then the live
// source under a short timeout, then the regional reference table, then
// the national-average constant. Degraded is reported only when a
// configured live source failed, since only then did the estimate lose
// fidelity the deployment asked for.
func (e *Estimator) fuelPrice(ctx context.Context, regionName string, override *float64) (price float64, degraded bool) {
	if override != nil {
		return *override, false
	}

	if e.source != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, fuelLookupTimeout)
		defer cancel()
		if p, err := e.source.FuelPrice(lookupCtx, regionName); err == nil && p > 0 {
			return p, false
		}
		degraded = true
	}

	if p, ok := e.pricing.FuelPriceFor(regionName); ok {
		return p, degraded
	}
	return DefaultFuelPricePerGallon, degraded
}
