package report

import (
	"time"

	"backend-fleetdesk/internal/fleet"
)

// VehicleSource supplies the current vehicle state, typically the live
// tracking fleet.
type VehicleSource interface {
	Snapshot() []fleet.VehicleRecord
}

type Service struct {
	provider *fleet.Provider
	vehicles VehicleSource
	author   string
	now      func() time.Time
}

// NewService builds reports from provider. vehicles may be nil, in which
// case the fixture vehicles are reported. author is the generatedBy value
// used when a caller does not name one.
func NewService(provider *fleet.Provider, vehicles VehicleSource, author string) *Service {
	return &Service{provider: provider, vehicles: vehicles, author: author, now: time.Now}
}

func (s *Service) Catalog() []Definition {
	return Catalog()
}

// Build assembles a fresh report. Nothing is cached between calls.
func (s *Service) Build(slug, generatedBy string) (Report, error) {
	def, err := Lookup(slug)
	if err != nil {
		return Report{}, err
	}

	if generatedBy == "" {
		generatedBy = s.author
	}
	now := s.now()
	r := Report{Definition: def, GeneratedAt: now, GeneratedBy: generatedBy}

	switch def.Kind {
	case DriverPerformance:
		s.buildDrivers(&r)
	case FleetSummary:
		s.buildFleet(&r)
	case ShipmentTracking:
		s.buildShipments(&r)
	case Compliance:
		s.buildCompliance(&r, now)
	case FuelEfficiency:
		s.buildFuel(&r)
	case Maintenance:
		s.buildMaintenance(&r)
	case RouteOptimization:
		s.buildRoutes(&r)
	}

	r.Sections = append([]Section{metaSection(r), summarySection(r.Summary)}, r.Sections...)
	return r, nil
}

func (s *Service) liveVehicles() []fleet.VehicleRecord {
	if s.vehicles != nil {
		return s.vehicles.Snapshot()
	}
	return s.provider.Vehicles()
}

func metaSection(r Report) Section {
	return Section{
		Title: r.Title,
		Rows: [][]string{
			{"Generated Date", stamp(r.GeneratedAt)},
			{"Generated By", r.GeneratedBy},
			{"Period", r.Period},
		},
	}
}
