// Package refdata loads the versioned static reference tables the cost
// components run on: market region centers, the maintenance schedule, and
// the zip coordinate table. Tables are loaded once at startup and treated
// as immutable afterwards; a malformed table is a startup failure.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ukydev/vehicle-cost-advisor/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	zipKeyPattern    = regexp.MustCompile(`^[0-9]{5}$`)
	prefixKeyPattern = regexp.MustCompile(`^[0-9]{3}$`)
)

// Tables holds every reference table, loaded and validated. Fields are
// read-only after Load returns.
type Tables struct {
	Version     string
	Regions     []models.RegionCenter
	Schedule    []models.MaintenanceEventType
	ZipCoords   map[string]models.Location
	ZipPrefixes map[string]models.Location
}

type regionsFile struct {
	Version string                `json:"version"`
	Regions []models.RegionCenter `json:"regions"`
}

type scheduleFile struct {
	Version  string                        `json:"version"`
	Services []models.MaintenanceEventType `json:"services"`
}

type zipsFile struct {
	Version  string                     `json:"version"`
	Zips     map[string]models.Location `json:"zips"`
	Prefixes map[string]models.Location `json:"prefixes"`
}

// Load parses and validates the embedded reference data. Any error is a
// configuration error: the caller should refuse to start rather than serve
// undefined pricing data.
func Load() (*Tables, error) {
	var rf regionsFile
	if err := loadFile("data/regions.json", &rf); err != nil {
		return nil, err
	}
	var sf scheduleFile
	if err := loadFile("data/schedule.json", &sf); err != nil {
		return nil, err
	}
	var zf zipsFile
	if err := loadFile("data/zipcodes.json", &zf); err != nil {
		return nil, err
	}

	t := &Tables{
		Version:     rf.Version,
		Regions:     rf.Regions,
		Schedule:    sf.Services,
		ZipCoords:   zf.Zips,
		ZipPrefixes: zf.Prefixes,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadFile(name string, out interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("refdata: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("refdata: parse %s: %w", name, err)
	}
	return nil
}

func (t *Tables) validate() error {
	if len(t.Regions) == 0 {
		return fmt.Errorf("refdata: regions table is empty")
	}
	seen := make(map[string]bool, len(t.Regions))
	fallbacks := 0
	for _, r := range t.Regions {
		if r.Name == "" {
			return fmt.Errorf("refdata: region with empty name")
		}
		if seen[r.Name] {
			return fmt.Errorf("refdata: duplicate region %q", r.Name)
		}
		seen[r.Name] = true
		if r.Multiplier <= 0 {
			return fmt.Errorf("refdata: region %q: multiplier must be > 0, got %v", r.Name, r.Multiplier)
		}
		if r.FuelPrice < 0 {
			return fmt.Errorf("refdata: region %q: fuel price must be >= 0, got %v", r.Name, r.FuelPrice)
		}
		if r.Name == models.NationalAverage {
			fallbacks++
			if r.Multiplier != 1.0 {
				return fmt.Errorf("refdata: %q multiplier must be exactly 1.0", models.NationalAverage)
			}
			if r.Location != (models.Location{}) {
				return fmt.Errorf("refdata: %q must not carry coordinates", models.NationalAverage)
			}
		}
	}
	if fallbacks != 1 {
		return fmt.Errorf("refdata: exactly one %q region required, found %d", models.NationalAverage, fallbacks)
	}

	if len(t.Schedule) == 0 {
		return fmt.Errorf("refdata: maintenance schedule is empty")
	}
	seenSvc := make(map[string]bool, len(t.Schedule))
	for _, s := range t.Schedule {
		if s.ServiceType == "" {
			return fmt.Errorf("refdata: schedule entry with empty service type")
		}
		if seenSvc[s.ServiceType] {
			return fmt.Errorf("refdata: duplicate service type %q", s.ServiceType)
		}
		seenSvc[s.ServiceType] = true
		if s.MileageInterval < 0 || s.AgeIntervalMonth < 0 {
			return fmt.Errorf("refdata: service %q: intervals must be >= 0", s.ServiceType)
		}
		if s.MileageInterval == 0 && s.AgeIntervalMonth == 0 {
			return fmt.Errorf("refdata: service %q: needs a mileage or age interval", s.ServiceType)
		}
		if s.BaseCost < 0 {
			return fmt.Errorf("refdata: service %q: base cost must be >= 0, got %v", s.ServiceType, s.BaseCost)
		}
		if s.Probability < 0 || s.Probability > 1 {
			return fmt.Errorf("refdata: service %q: probability must be in [0,1], got %v", s.ServiceType, s.Probability)
		}
	}

	for zip := range t.ZipCoords {
		if !zipKeyPattern.MatchString(zip) {
			return fmt.Errorf("refdata: malformed zip key %q", zip)
		}
	}
	for prefix := range t.ZipPrefixes {
		if !prefixKeyPattern.MatchString(prefix) {
			return fmt.Errorf("refdata: malformed zip prefix key %q", prefix)
		}
	}
	return nil
}
