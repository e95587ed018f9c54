package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
)

var testNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func fixtureSchedule() *Schedule {
	return NewSchedule(&refdata.Tables{
		Schedule: []models.MaintenanceEventType{
			{ServiceType: "Oil Change", MileageInterval: 5000, BaseCost: 40, Probability: 0.95, Routine: true},
			{ServiceType: "Tire Rotation", MileageInterval: 7500, BaseCost: 50, Probability: 0.9, Routine: true},
			{ServiceType: "Battery Replacement", AgeIntervalMonth: 48, BaseCost: 180, Probability: 0.7},
			{ServiceType: "Coolant Flush", MileageInterval: 50000, AgeIntervalMonth: 60, BaseCost: 130, Probability: 0.6},
		},
	})
}

func findCandidate(t *testing.T, candidates []Candidate, serviceType string) Candidate {
	t.Helper()
	for _, c := range candidates {
		if c.Event.ServiceType == serviceType {
			return c
		}
	}
	t.Fatalf("no candidate for %q", serviceType)
	return Candidate{}
}

func TestSchedule_NextMileageOccurrence(t *testing.T) {
	s := fixtureSchedule()

	candidates := s.DueEvents(25000, 36, 1000, testNow)
	oil := findCandidate(t, candidates, "Oil Change")

	assert.Equal(t, 30000, oil.PredictedMileage)
	// 5000 miles at 1000/month is five months out.
	wantDate := testNow.AddDate(0, 0, 152)
	assert.Equal(t, wantDate, oil.PredictedDate)
}

func TestSchedule_AgeBasedOccurrence(t *testing.T) {
	s := fixtureSchedule()

	candidates := s.DueEvents(25000, 36, 1000, testNow)
	battery := findCandidate(t, candidates, "Battery Replacement")

	// Next 48-month boundary from age 36 is 12 months out.
	assert.Equal(t, testNow.AddDate(0, 0, 365), battery.PredictedDate)
	assert.Equal(t, 25000+12*1000, battery.PredictedMileage)
}

func TestSchedule_DualIntervalTakesSooner(t *testing.T) {
	s := fixtureSchedule()

	// At 48k miles and heavy usage the 50k mileage boundary arrives well
	// before the 60-month age boundary.
	candidates := s.DueEvents(48000, 12, 2000, testNow)
	coolant := findCandidate(t, candidates, "Coolant Flush")
	assert.Equal(t, 50000, coolant.PredictedMileage)

	// With negligible usage the age boundary comes first.
	candidates = s.DueEvents(48000, 12, 10, testNow)
	coolant = findCandidate(t, candidates, "Coolant Flush")
	assert.Equal(t, testNow.AddDate(0, 0, 1461), coolant.PredictedDate) // 48 months
}

func TestSchedule_ZeroMonthlyMilesOmitsMileageEvents(t *testing.T) {
	s := fixtureSchedule()

	candidates := s.DueEvents(25000, 36, 0, testNow)

	assert.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.NotEmpty(t, c.Event.AgeIntervalMonth, "only age-based events expected, got %q", c.Event.ServiceType)
	}
}

func TestSchedule_Ordering(t *testing.T) {
	s := fixtureSchedule()

	candidates := s.DueEvents(25000, 36, 1000, testNow)
	for i := 1; i < len(candidates); i++ {
		prev, cur := candidates[i-1], candidates[i]
		assert.False(t, cur.PredictedDate.Before(prev.PredictedDate))
		if cur.PredictedDate.Equal(prev.PredictedDate) {
			assert.GreaterOrEqual(t, prev.Event.Probability, cur.Event.Probability)
		}
	}
}

func TestSchedule_SameDateTieBreaksOnProbability(t *testing.T) {
	s := NewSchedule(&refdata.Tables{
		Schedule: []models.MaintenanceEventType{
			{ServiceType: "Low", MileageInterval: 5000, BaseCost: 10, Probability: 0.2},
			{ServiceType: "High", MileageInterval: 5000, BaseCost: 10, Probability: 0.8},
		},
	})

	candidates := s.DueEvents(0, 0, 1000, testNow)
	assert.Len(t, candidates, 2)
	assert.Equal(t, "High", candidates[0].Event.ServiceType)
	assert.Equal(t, "Low", candidates[1].Event.ServiceType)
}
