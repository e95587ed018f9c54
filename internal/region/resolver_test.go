package region

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
)

// fixtureTables builds a small injected reference set: two market regions
// plus the fallback, one exact zip sitting on a center, one remote zip far
// from everything, and one prefix-only area.
func fixtureTables() *refdata.Tables {
	return &refdata.Tables{
		Regions: []models.RegionCenter{
			{Name: "New York", Location: models.Location{Lat: 40.7128, Lon: -74.006}, Multiplier: 1.25, FuelPrice: 3.62},
			{Name: "Philadelphia", Location: models.Location{Lat: 39.9526, Lon: -75.1652}, Multiplier: 1.09, FuelPrice: 3.55},
			{Name: models.NationalAverage, Multiplier: 1.0, FuelPrice: 3.5},
		},
		ZipCoords: map[string]models.Location{
			"10001": {Lat: 40.7128, Lon: -74.006},  // exactly on the New York center
			"59901": {Lat: 48.1920, Lon: -114.316}, // Kalispell MT, far from every center
			"08540": {Lat: 40.3573, Lon: -74.6672}, // Princeton NJ, between the two centers
		},
		ZipPrefixes: map[string]models.Location{
			"112": {Lat: 40.6782, Lon: -73.9442}, // Brooklyn
		},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(fixtureTables(), 16)
	assert.NoError(t, err)
	return r
}

func TestResolver_ExactMatch(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve("10001")
	assert.True(t, got.Matched)
	assert.Equal(t, "New York", got.Region)
	assert.InDelta(t, 0.0, got.DistanceMiles, 0.01)
	assert.False(t, got.Approximate)
	assert.Empty(t, got.Reason)
}

func TestResolver_OutOfRange(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve("59901")
	assert.False(t, got.Matched)
	assert.Equal(t, models.NationalAverage, got.Region)
	assert.Greater(t, got.DistanceMiles, RadiusMiles)
	assert.Equal(t, ReasonOutOfRange, got.Reason)
}

func TestResolver_WithinRadius(t *testing.T) {
	r := newTestResolver(t)

	// Princeton is ~40 miles from both centers but closer to NY than Philly.
	got := r.Resolve("08540")
	assert.True(t, got.Matched)
	assert.LessOrEqual(t, got.DistanceMiles, RadiusMiles)
	assert.Greater(t, got.DistanceMiles, 0.0)
}

func TestResolver_PrefixApproximation(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve("11201") // not in the exact table, prefix 112 is
	assert.True(t, got.Matched)
	assert.Equal(t, "New York", got.Region)
	assert.True(t, got.Approximate)
}

func TestResolver_UnknownZip(t *testing.T) {
	r := newTestResolver(t)

	got := r.Resolve("99999")
	assert.False(t, got.Matched)
	assert.Equal(t, models.NationalAverage, got.Region)
	assert.Equal(t, ReasonUnknownZip, got.Reason)
}

func TestResolver_MalformedInput(t *testing.T) {
	r := newTestResolver(t)

	for _, zip := range []string{"", "1234", "123456", "1000a", "10 01"} {
		got := r.Resolve(zip)
		assert.False(t, got.Matched, "zip %q", zip)
		assert.Equal(t, models.NationalAverage, got.Region)
		assert.Equal(t, ReasonBadFormat, got.Reason)
	}
}

func TestResolver_EquidistantTieBreak(t *testing.T) {
	// Two centers at the same point: the lexicographically smaller name wins.
	tables := &refdata.Tables{
		Regions: []models.RegionCenter{
			{Name: "Zeta", Location: models.Location{Lat: 40.0, Lon: -75.0}, Multiplier: 1.1},
			{Name: "Alpha", Location: models.Location{Lat: 40.0, Lon: -75.0}, Multiplier: 1.2},
			{Name: models.NationalAverage, Multiplier: 1.0},
		},
		ZipCoords: map[string]models.Location{
			"19100": {Lat: 40.0, Lon: -75.0},
		},
	}
	r, err := NewResolver(tables, 16)
	assert.NoError(t, err)

	got := r.Resolve("19100")
	assert.True(t, got.Matched)
	assert.Equal(t, "Alpha", got.Region)
}

func TestResolver_CacheReturnsIdenticalResults(t *testing.T) {
	r := newTestResolver(t)

	first := r.Resolve("10001") // miss
	second := r.Resolve("10001") // hit
	assert.Equal(t, first, second)

	// Cache state never changes the answer for other zips either.
	assert.Equal(t, r.Resolve("59901"), r.Resolve("59901"))
}

func TestHaversineMiles(t *testing.T) {
	ny := models.Location{Lat: 40.7128, Lon: -74.006}
	la := models.Location{Lat: 34.0522, Lon: -118.2437}

	assert.InDelta(t, 0.0, haversineMiles(ny, ny), 0.0001)
	// Known distance NY-LA is roughly 2445 miles.
	assert.InDelta(t, 2445, haversineMiles(ny, la), 20)
}
