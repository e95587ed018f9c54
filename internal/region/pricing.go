package region

import (
	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
)

// PricingTable holds the per-region cost multipliers and reference fuel
// prices. Immutable after construction.
type PricingTable struct {
	multipliers map[string]float64
	fuelPrices  map[string]float64
}

// NewPricingTable builds the table from loaded reference data.
func NewPricingTable(t *refdata.Tables) *PricingTable {
	p := &PricingTable{
		multipliers: make(map[string]float64, len(t.Regions)),
		fuelPrices:  make(map[string]float64, len(t.Regions)),
	}
	for _, r := range t.Regions {
		p.multipliers[r.Name] = r.Multiplier
		if r.FuelPrice > 0 {
			p.fuelPrices[r.Name] = r.FuelPrice
		}
	}
	return p
}

// MultiplierFor returns the cost multiplier for a region. Unknown names and
// the national-average fallback yield exactly 1.0: pricing adjustment is an
// enhancement, so the table fails open to neutral rather than erroring.
func (p *PricingTable) MultiplierFor(region string) float64 {
	if region == models.NationalAverage {
		return 1.0
	}
	if m, ok := p.multipliers[region]; ok {
		return m
	}
	return 1.0
}

// FuelPriceFor returns the reference fuel price for a region, if one is on
// file.
func (p *PricingTable) FuelPriceFor(region string) (float64, bool) {
	price, ok := p.fuelPrices[region]
	return price, ok
}
