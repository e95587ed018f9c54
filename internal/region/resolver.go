// Package region maps vehicle locations to market regions and supplies the
// regional pricing data applied on top of national base costs.
package region

import (
	"math"
	"regexp"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
)

const (
	// RadiusMiles is the maximum distance at which a zip code is considered
	// part of a market region. Beyond it the national average applies.
	RadiusMiles = 75.0

	earthRadiusMiles = 3958.8

	// Distances inside this band are treated as equal when picking the
	// nearest center, so ordering falls back to the region name.
	distanceEpsilon = 1e-6

	defaultCacheSize = 1024
)

var zipFormat = regexp.MustCompile(`^[0-9]{5}$`)

// Reasons carried on unresolved assignments. Callers distinguish "the zip
// could not be located at all" (a degraded lookup) from "the zip is simply
// far from every market region" (an accurate answer).
const (
	ReasonBadFormat  = "zip code must be a 5-digit numeric string"
	ReasonUnknownZip = "zip code not in coordinate table"
	ReasonOutOfRange = "no market region within range"
)

// Resolver assigns zip codes to market regions by nearest-center distance.
// It is safe for concurrent use; the embedded cache is the only mutable
// state and exists purely as a latency optimization.
type Resolver struct {
	centers  []models.RegionCenter
	zips     map[string]models.Location
	prefixes map[string]models.Location
	cache    *lru.Cache[string, models.RegionAssignment]
}

// NewResolver builds a resolver over the loaded reference tables.
// cacheSize bounds the zip resolution cache; values <= 0 select a default.
func NewResolver(t *refdata.Tables, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, models.RegionAssignment](cacheSize)
	if err != nil {
		return nil, err
	}

	// Only centers with coordinates participate in the distance search;
	// the fallback pseudo-region has none. Sorting by name makes iteration
	// order, and therefore tie-breaking, deterministic.
	centers := make([]models.RegionCenter, 0, len(t.Regions))
	for _, r := range t.Regions {
		if r.Name == models.NationalAverage {
			continue
		}
		centers = append(centers, r)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i].Name < centers[j].Name })

	return &Resolver{
		centers:  centers,
		zips:     t.ZipCoords,
		prefixes: t.ZipPrefixes,
		cache:    cache,
	}, nil
}

// Resolve maps a zip code to a market region. It never fails: malformed or
// unmappable input yields the fallback region with Matched=false and a
// reason, so batch callers can degrade per item.
func (r *Resolver) Resolve(zip string) models.RegionAssignment {
	if !zipFormat.MatchString(zip) {
		return models.RegionAssignment{
			Region:  models.NationalAverage,
			Matched: false,
			Reason:  ReasonBadFormat,
		}
	}

	if cached, ok := r.cache.Get(zip); ok {
		return cached
	}

	loc, approximate, ok := r.locate(zip)
	if !ok {
		result := models.RegionAssignment{
			Region:  models.NationalAverage,
			Matched: false,
			Reason:  ReasonUnknownZip,
		}
		r.cache.Add(zip, result)
		return result
	}

	name, distance := r.nearest(loc)
	result := models.RegionAssignment{
		Region:        name,
		DistanceMiles: distance,
		Matched:       true,
		Approximate:   approximate,
	}
	if distance > RadiusMiles {
		result.Region = models.NationalAverage
		result.Matched = false
		result.Reason = ReasonOutOfRange
	}
	r.cache.Add(zip, result)
	return result
}

// locate finds coordinates for a zip, exact first, then the 3-digit prefix
// centroid approximation.
func (r *Resolver) locate(zip string) (loc models.Location, approximate, ok bool) {
	if loc, ok := r.zips[zip]; ok {
		return loc, false, true
	}
	if loc, ok := r.prefixes[zip[:3]]; ok {
		return loc, true, true
	}
	return models.Location{}, false, false
}

// nearest returns the closest center to loc. Centers within epsilon of each
// other count as equidistant and the lexicographically smaller name wins,
// which the sorted center slice provides for free.
func (r *Resolver) nearest(loc models.Location) (string, float64) {
	best := ""
	bestDist := math.MaxFloat64
	for _, c := range r.centers {
		d := haversineMiles(loc, c.Location)
		if d < bestDist-distanceEpsilon {
			best = c.Name
			bestDist = d
		}
	}
	return best, bestDist
}

// haversineMiles computes the great-circle distance between two points.
func haversineMiles(a, b models.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
