package report

import (
	"time"

	"backend-fleetdesk/internal/fleet"
)

type ComplianceEntry struct {
	fleet.ComplianceRecord `yaml:",inline"`
	NextDocument           string                 `json:"nextDocument" yaml:"nextDocument"`
	DaysUntilExpiry        int                    `json:"daysUntilExpiry" yaml:"daysUntilExpiry"`
	OverallStatus          fleet.ComplianceStatus `json:"overallStatus" yaml:"overallStatus"`
}

// Dataset carries the raw per-entity arrays of a report. Only the arrays a
// report kind uses are set; those are always encoded, empty or not, and nil
// arrays are left out.
type Dataset struct {
	Drivers                 []fleet.DriverRecord      `json:"drivers" yaml:"drivers"`
	PerformanceCategories   []fleet.Distribution      `json:"performanceCategories" yaml:"performanceCategories"`
	Vehicles                []fleet.VehicleRecord     `json:"vehicles" yaml:"vehicles"`
	DeliveryStatusBreakdown []fleet.Distribution      `json:"deliveryStatusBreakdown" yaml:"deliveryStatusBreakdown"`
	Shipments               []fleet.ShipmentRecord    `json:"shipments" yaml:"shipments"`
	ComplianceRecords       []ComplianceEntry         `json:"complianceRecords" yaml:"complianceRecords"`
	FuelRecords             []fleet.FuelRecord        `json:"fuelRecords" yaml:"fuelRecords"`
	MaintenanceRecords      []fleet.MaintenanceRecord `json:"maintenanceRecords" yaml:"maintenanceRecords"`
	Routes                  []fleet.RouteRecord       `json:"routes" yaml:"routes"`
}

func (d Dataset) arrays() Summary {
	var out Summary
	add := func(key string, set bool, v any) {
		if set {
			out = append(out, Metric{Key: key, Value: v})
		}
	}
	add("drivers", d.Drivers != nil, d.Drivers)
	add("performanceCategories", d.PerformanceCategories != nil, d.PerformanceCategories)
	add("vehicles", d.Vehicles != nil, d.Vehicles)
	add("deliveryStatusBreakdown", d.DeliveryStatusBreakdown != nil, d.DeliveryStatusBreakdown)
	add("shipments", d.Shipments != nil, d.Shipments)
	add("complianceRecords", d.ComplianceRecords != nil, d.ComplianceRecords)
	add("fuelRecords", d.FuelRecords != nil, d.FuelRecords)
	add("maintenanceRecords", d.MaintenanceRecords != nil, d.MaintenanceRecords)
	add("routes", d.Routes != nil, d.Routes)
	return out
}

func (d Dataset) MarshalJSON() ([]byte, error) {
	return d.arrays().MarshalJSON()
}

func (d Dataset) MarshalYAML() (any, error) {
	return d.arrays().MarshalYAML()
}

type Report struct {
	Definition
	GeneratedAt     time.Time
	GeneratedBy     string
	Summary         Summary
	Sections        []Section
	Data            Dataset
	Insights        []string
	Recommendations []string
}

// Payload is the structured export document. Field order is the key order
// of the encoded output.
type Payload struct {
	ReportType      string    `json:"reportType" yaml:"reportType"`
	GeneratedDate   time.Time `json:"generatedDate" yaml:"generatedDate"`
	GeneratedBy     string    `json:"generatedBy" yaml:"generatedBy"`
	Period          string    `json:"period" yaml:"period"`
	Summary         Summary   `json:"summary" yaml:"summary"`
	Data            Dataset   `json:"data" yaml:"data"`
	Insights        []string  `json:"insights" yaml:"insights"`
	Recommendations []string  `json:"recommendations" yaml:"recommendations"`
}

func (r Report) Payload() Payload {
	return Payload{
		ReportType:      r.Title,
		GeneratedDate:   r.GeneratedAt.UTC(),
		GeneratedBy:     r.GeneratedBy,
		Period:          r.Period,
		Summary:         r.Summary,
		Data:            r.Data,
		Insights:        nonNil(r.Insights),
		Recommendations: nonNil(r.Recommendations),
	}
}

// Section returns the section with the given title.
func (r Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
