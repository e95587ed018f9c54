// Package maintenance projects upcoming vehicle service events and prices
// them for the vehicle's market region.
package maintenance

import (
	"math"
	"sort"
	"time"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
	"github.com/ukydev/vehicle-cost-advisor/internal/refdata"
)

// Calendar projection uses an average month length so that fractional
// mileage-derived months land on concrete dates.
const daysPerMonth = 30.44

// Candidate is a service type projected onto a concrete date and odometer
// reading for one vehicle.
type Candidate struct {
	Event            models.MaintenanceEventType
	PredictedDate    time.Time
	PredictedMileage int
}

// Schedule is the declarative maintenance interval table.
type Schedule struct {
	events []models.MaintenanceEventType
}

// NewSchedule builds the schedule from loaded reference data.
func NewSchedule(t *refdata.Tables) *Schedule {
	return &Schedule{events: t.Schedule}
}

// DueEvents projects the next occurrence of every service type for a
// vehicle at the given mileage and age. monthlyMiles drives the
// mileage-to-date conversion; when it is zero there is not enough usage
// data to date mileage-based services, so those are omitted entirely
// rather than divided by zero. Results are ordered soonest first, ties
// broken by higher probability, then by service name.
func (s *Schedule) DueEvents(mileage, ageMonths, monthlyMiles int, now time.Time) []Candidate {
	candidates := make([]Candidate, 0, len(s.events))
	for _, ev := range s.events {
		c, ok := s.project(ev, mileage, ageMonths, monthlyMiles, now)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].PredictedDate.Equal(candidates[j].PredictedDate) {
			return candidates[i].PredictedDate.Before(candidates[j].PredictedDate)
		}
		if candidates[i].Event.Probability != candidates[j].Event.Probability {
			return candidates[i].Event.Probability > candidates[j].Event.Probability
		}
		return candidates[i].Event.ServiceType < candidates[j].Event.ServiceType
	})
	return candidates
}

// project computes the next occurrence of one service type. A service with
// both mileage and age intervals is due at whichever occurrence comes
// first.
func (s *Schedule) project(ev models.MaintenanceEventType, mileage, ageMonths, monthlyMiles int, now time.Time) (Candidate, bool) {
	var byMileage, byAge *Candidate

	if ev.MileageInterval > 0 && monthlyMiles > 0 {
		nextMileage := (mileage/ev.MileageInterval + 1) * ev.MileageInterval
		monthsOut := float64(nextMileage-mileage) / float64(monthlyMiles)
		byMileage = &Candidate{
			Event:            ev,
			PredictedDate:    addMonths(now, monthsOut),
			PredictedMileage: nextMileage,
		}
	}

	if ev.AgeIntervalMonth > 0 {
		monthsOut := (ageMonths/ev.AgeIntervalMonth+1)*ev.AgeIntervalMonth - ageMonths
		byAge = &Candidate{
			Event:            ev,
			PredictedDate:    addMonths(now, float64(monthsOut)),
			PredictedMileage: mileage + monthlyMiles*monthsOut,
		}
	}

	switch {
	case byMileage != nil && byAge != nil:
		if byMileage.PredictedDate.Before(byAge.PredictedDate) {
			return *byMileage, true
		}
		return *byAge, true
	case byMileage != nil:
		return *byMileage, true
	case byAge != nil:
		return *byAge, true
	default:
		return Candidate{}, false
	}
}

func addMonths(t time.Time, months float64) time.Time {
	days := int(math.Round(months * daysPerMonth))
	return t.AddDate(0, 0, days)
}
