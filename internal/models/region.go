package models

// NationalAverage is the fallback pseudo-region returned when no market
// region is close enough to a vehicle's location. Its multiplier is 1.0.
const NationalAverage = "National Average"

// Location represents a geographical location with latitude and longitude coordinates.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

// RegionCenter is the reference point of a market region (MSA) together
// with the cost multipliers applied inside it.
type RegionCenter struct {
	Name       string   `json:"name"`
	Location   Location `json:"location"`
	Multiplier float64  `json:"multiplier"`
	FuelPrice  float64  `json:"fuel_price"`
}

// RegionAssignment is the outcome of resolving a zip code to a region.
// DistanceMiles is only meaningful when coordinates were found for the zip;
// when the lookup failed outright (bad format, unknown zip) it stays zero
// and Reason says why.
type RegionAssignment struct {
	Region        string  `json:"region"`
	DistanceMiles float64 `json:"distance_miles"`
	Matched       bool    `json:"matched"`
	Approximate   bool    `json:"approximate,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}
