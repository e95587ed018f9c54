package refdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
)

func TestLoad_EmbeddedData(t *testing.T) {
	tables, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, tables)

	assert.NotEmpty(t, tables.Regions)
	assert.NotEmpty(t, tables.Schedule)
	assert.NotEmpty(t, tables.ZipCoords)
	assert.NotEmpty(t, tables.ZipPrefixes)

	// Exactly one fallback pseudo-region, neutral multiplier, no coordinates.
	fallbacks := 0
	for _, r := range tables.Regions {
		if r.Name == models.NationalAverage {
			fallbacks++
			assert.Equal(t, 1.0, r.Multiplier)
			assert.Equal(t, models.Location{}, r.Location)
		}
	}
	assert.Equal(t, 1, fallbacks)
}

func validTables() *Tables {
	return &Tables{
		Regions: []models.RegionCenter{
			{Name: "New York", Location: models.Location{Lat: 40.7128, Lon: -74.006}, Multiplier: 1.25, FuelPrice: 3.62},
			{Name: models.NationalAverage, Multiplier: 1.0, FuelPrice: 3.5},
		},
		Schedule: []models.MaintenanceEventType{
			{ServiceType: "Oil Change", MileageInterval: 5000, BaseCost: 40, Probability: 0.95, Routine: true},
		},
		ZipCoords:   map[string]models.Location{"10001": {Lat: 40.7506, Lon: -73.9972}},
		ZipPrefixes: map[string]models.Location{"100": {Lat: 40.7128, Lon: -74.006}},
	}
}

func TestTables_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"no regions", func(tb *Tables) { tb.Regions = nil }},
		{"duplicate region", func(tb *Tables) { tb.Regions = append(tb.Regions, tb.Regions[0]) }},
		{"zero multiplier", func(tb *Tables) { tb.Regions[0].Multiplier = 0 }},
		{"negative fuel price", func(tb *Tables) { tb.Regions[0].FuelPrice = -1 }},
		{"missing fallback", func(tb *Tables) { tb.Regions = tb.Regions[:1] }},
		{"fallback multiplier not neutral", func(tb *Tables) { tb.Regions[1].Multiplier = 1.1 }},
		{"fallback with coordinates", func(tb *Tables) { tb.Regions[1].Location = models.Location{Lat: 1} }},
		{"empty schedule", func(tb *Tables) { tb.Schedule = nil }},
		{"duplicate service", func(tb *Tables) { tb.Schedule = append(tb.Schedule, tb.Schedule[0]) }},
		{"service without interval", func(tb *Tables) { tb.Schedule[0].MileageInterval = 0 }},
		{"negative base cost", func(tb *Tables) { tb.Schedule[0].BaseCost = -1 }},
		{"probability above one", func(tb *Tables) { tb.Schedule[0].Probability = 1.5 }},
		{"malformed zip key", func(tb *Tables) { tb.ZipCoords["123"] = models.Location{} }},
		{"malformed prefix key", func(tb *Tables) { tb.ZipPrefixes["12345"] = models.Location{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := validTables()
			tt.mutate(tb)
			assert.Error(t, tb.validate())
		})
	}

	assert.NoError(t, validTables().validate())
}
