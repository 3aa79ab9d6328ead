package fleet

import "time"

// Provider serves the dashboard fixtures. Date fields are laid out relative
// to the anchor so expiry and schedule dates stay meaningful whenever the
// process starts. Every accessor builds fresh literals, so callers may mutate
// what they get back.
type Provider struct {
	anchor time.Time
}

func NewProvider(anchor time.Time) *Provider {
	return &Provider{anchor: truncateDay(anchor)}
}

func (p *Provider) Anchor() time.Time {
	return p.anchor
}

func (p *Provider) day(offset int) time.Time {
	return p.anchor.AddDate(0, 0, offset)
}

func (p *Provider) at(dayOffset int, hour, minute int) time.Time {
	return p.day(dayOffset).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (p *Provider) Drivers() []DriverRecord {
	return []DriverRecord{
		{ID: "DRV-001", Name: "Marcus Johnson", Phone: "+1 (555) 123-4567", Email: "marcus.johnson@fleetdesk.io", TotalTrips: 342, OnTimePercentage: 97.8, SafetyScore: 98, CustomerRating: 4.9, MonthlyEarnings: 6850, Rank: 1, Certifications: []string{"CDL Class A", "Hazmat"}, Specializations: []string{"Long Haul", "Refrigerated"}},
		{ID: "DRV-002", Name: "Sarah Chen", Phone: "+1 (555) 234-5678", Email: "sarah.chen@fleetdesk.io", TotalTrips: 318, OnTimePercentage: 96.5, SafetyScore: 97, CustomerRating: 4.8, MonthlyEarnings: 6420, Rank: 2, Certifications: []string{"CDL Class A", "Tanker"}, Specializations: []string{"Express", "Fragile Goods"}},
		{ID: "DRV-003", Name: "David Rodriguez", Phone: "+1 (555) 345-6789", Email: "david.rodriguez@fleetdesk.io", TotalTrips: 295, OnTimePercentage: 94.2, SafetyScore: 95, CustomerRating: 4.7, MonthlyEarnings: 5980, Rank: 3, Certifications: []string{"CDL Class B"}, Specializations: []string{"Urban Delivery"}},
		{ID: "DRV-004", Name: "Emily Watson", Phone: "+1 (555) 456-7890", Email: "emily.watson@fleetdesk.io", TotalTrips: 276, OnTimePercentage: 92.8, SafetyScore: 93, CustomerRating: 4.6, MonthlyEarnings: 5640, Rank: 4, Certifications: []string{"CDL Class A", "Doubles/Triples"}, Specializations: []string{"Heavy Freight"}},
		{ID: "DRV-005", Name: "James O'Connor", Phone: "+1 (555) 567-8901", TotalTrips: 251, OnTimePercentage: 89.4, SafetyScore: 88, CustomerRating: 4.3, MonthlyEarnings: 5120, Rank: 5, Certifications: []string{"CDL Class B"}, Specializations: []string{"Regional", "Construction, Bulk"}},
		{ID: "DRV-006", Name: "Priya Patel", Phone: "+1 (555) 678-9012", Email: "priya.patel@fleetdesk.io", TotalTrips: 198, OnTimePercentage: 86.1, SafetyScore: 91, CustomerRating: 4.1, MonthlyEarnings: 4780, Rank: 6, Certifications: []string{"CDL Class A"}, Specializations: []string{"Night Routes"}},
	}
}

func (p *Provider) Vehicles() []VehicleRecord {
	updated := p.at(0, 8, 0)
	return []VehicleRecord{
		{ID: "VH-101", Plate: "TRK-4521", DriverID: "DRV-001", Status: StatusInTransit, Speed: 92, FuelPercent: 68, BatteryPercent: 94, SignalPercent: 88, Position: Position{Lat: 41.8781, Lng: -87.6298}, Destination: "1200 Industrial Pkwy, Milwaukee, WI", DestinationPosition: Position{Lat: 43.0389, Lng: -87.9065}, ETA: "2h 15m", Alerts: []string{}, LastUpdate: updated},
		{ID: "VH-102", Plate: "TRK-3387", DriverID: "DRV-002", Status: StatusInTransit, Speed: 78, FuelPercent: 45, BatteryPercent: 87, SignalPercent: 92, Position: Position{Lat: 39.7684, Lng: -86.1581}, Destination: "455 Commerce Dr, Columbus, OH", DestinationPosition: Position{Lat: 39.9612, Lng: -82.9988}, ETA: "3h 05m", Alerts: []string{"Low fuel within 150 km"}, LastUpdate: updated},
		{ID: "VH-103", Plate: "VAN-1204", DriverID: "DRV-003", Status: StatusLoading, Speed: 0, FuelPercent: 82, BatteryPercent: 99, SignalPercent: 95, Position: Position{Lat: 42.3314, Lng: -83.0458}, Destination: "88 Harbor St, Toledo, OH", DestinationPosition: Position{Lat: 41.6528, Lng: -83.5379}, ETA: "1h 40m", Alerts: []string{}, LastUpdate: updated},
		{ID: "VH-104", Plate: "TRK-7719", DriverID: "DRV-004", Status: StatusMaintenance, Speed: 0, FuelPercent: 30, BatteryPercent: 62, SignalPercent: 70, Position: Position{Lat: 41.4993, Lng: -81.6944}, Destination: "Service Center, Cleveland, OH", DestinationPosition: Position{Lat: 41.4993, Lng: -81.6944}, ETA: "-", Alerts: []string{"Brake inspection overdue", "Tire pressure low"}, LastUpdate: updated},
		{ID: "VH-105", Plate: "VAN-2290", DriverID: "DRV-005", Status: StatusDelivered, Speed: 0, FuelPercent: 55, BatteryPercent: 90, SignalPercent: 85, Position: Position{Lat: 38.6270, Lng: -90.1994}, Destination: "900 Market St, St. Louis, MO", DestinationPosition: Position{Lat: 38.6270, Lng: -90.1994}, ETA: "Arrived", Alerts: []string{}, LastUpdate: updated},
		{ID: "VH-106", Plate: "TRK-5503", DriverID: "DRV-006", Status: StatusIdle, Speed: 0, FuelPercent: 91, BatteryPercent: 97, SignalPercent: 60, Position: Position{Lat: 43.0731, Lng: -89.4012}, Destination: "Depot, Madison, WI", DestinationPosition: Position{Lat: 43.0731, Lng: -89.4012}, ETA: "-", Alerts: []string{"Weak GPS signal"}, LastUpdate: updated},
	}
}

func (p *Provider) Shipments() []ShipmentRecord {
	return []ShipmentRecord{
		{ID: "SHP-5001", Customer: "Acme Manufacturing", Driver: "DRV-001", Vehicle: "VH-101", Status: "In Transit", ProgressPercentage: 65, TrackingEvents: []TrackingEvent{
			{Timestamp: p.at(0, 5, 30), Event: "Picked up", Location: "Chicago, IL", Status: EventCompleted},
			{Timestamp: p.at(0, 7, 10), Event: "Departed hub", Location: "Gary, IN", Status: EventCompleted},
			{Timestamp: p.at(0, 8, 0), Event: "On route", Location: "Kenosha, WI", Status: EventCurrent},
			{Timestamp: p.at(0, 10, 15), Event: "Delivery", Location: "Milwaukee, WI", Status: EventPending},
		}},
		{ID: "SHP-5002", Customer: "Global Foods, Inc.", Driver: "DRV-002", Vehicle: "VH-102", Status: "Delayed", ProgressPercentage: 40, TrackingEvents: []TrackingEvent{
			{Timestamp: p.at(0, 4, 45), Event: "Picked up", Location: "Indianapolis, IN", Status: EventCompleted},
			{Timestamp: p.at(0, 7, 30), Event: "Weather hold", Location: "Richmond, IN", Status: EventDelayed},
			{Timestamp: p.at(0, 11, 0), Event: "Delivery", Location: "Columbus, OH", Status: EventPending},
		}},
		{ID: "SHP-5003", Customer: "TechParts Co", Driver: "DRV-003", Vehicle: "VH-103", Status: "Loading", ProgressPercentage: 10, TrackingEvents: []TrackingEvent{
			{Timestamp: p.at(0, 7, 50), Event: "Loading started", Location: "Detroit, MI", Status: EventCurrent},
			{Timestamp: p.at(0, 12, 0), Event: "Delivery", Location: "Toledo, OH", Status: EventPending},
		}},
		{ID: "SHP-5004", Customer: "BuildRight Supply", Driver: "DRV-005", Vehicle: "VH-105", Status: "Delivered", ProgressPercentage: 100, TrackingEvents: []TrackingEvent{
			{Timestamp: p.at(-1, 9, 0), Event: "Picked up", Location: "Springfield, IL", Status: EventCompleted},
			{Timestamp: p.at(-1, 13, 20), Event: "Delivered", Location: "St. Louis, MO", Status: EventCompleted},
		}},
	}
}

func (p *Provider) Compliance() []ComplianceRecord {
	return []ComplianceRecord{
		{SubjectID: "VH-101", SubjectName: "TRK-4521", Kind: "vehicle", Documents: []ComplianceDocument{{Name: "Registration", ExpiryDate: p.day(210)}, {Name: "Annual Inspection", ExpiryDate: p.day(95)}, {Name: "Insurance", ExpiryDate: p.day(150)}}},
		{SubjectID: "VH-102", SubjectName: "TRK-3387", Kind: "vehicle", Documents: []ComplianceDocument{{Name: "Registration", ExpiryDate: p.day(120)}, {Name: "Annual Inspection", ExpiryDate: p.day(21)}}},
		{SubjectID: "VH-104", SubjectName: "TRK-7719", Kind: "vehicle", Documents: []ComplianceDocument{{Name: "Registration", ExpiryDate: p.day(60)}, {Name: "Annual Inspection", ExpiryDate: p.day(-12)}}},
		{SubjectID: "DRV-001", SubjectName: "Marcus Johnson", Kind: "driver", Documents: []ComplianceDocument{{Name: "CDL License", ExpiryDate: p.day(400)}, {Name: "Medical Certificate", ExpiryDate: p.day(180)}}},
		{SubjectID: "DRV-004", SubjectName: "Emily Watson", Kind: "driver", Documents: []ComplianceDocument{{Name: "CDL License", ExpiryDate: p.day(300)}, {Name: "Medical Certificate", ExpiryDate: p.day(5)}}},
		{SubjectID: "DRV-005", SubjectName: "James O'Connor", Kind: "driver", Documents: []ComplianceDocument{{Name: "CDL License", ExpiryDate: p.day(-3)}, {Name: "Medical Certificate", ExpiryDate: p.day(40)}}},
	}
}

func (p *Provider) Fuel() []FuelRecord {
	return []FuelRecord{
		{VehicleID: "VH-101", Month: monthLabel(p.anchor), Liters: 1840, Cost: 3128, DistanceKm: 6420, EfficiencyKmL: 3.49},
		{VehicleID: "VH-102", Month: monthLabel(p.anchor), Liters: 1610, Cost: 2737, DistanceKm: 5380, EfficiencyKmL: 3.34},
		{VehicleID: "VH-103", Month: monthLabel(p.anchor), Liters: 720, Cost: 1224, DistanceKm: 4310, EfficiencyKmL: 5.99},
		{VehicleID: "VH-104", Month: monthLabel(p.anchor), Liters: 980, Cost: 1666, DistanceKm: 3050, EfficiencyKmL: 3.11},
		{VehicleID: "VH-105", Month: monthLabel(p.anchor), Liters: 655, Cost: 1113.5, DistanceKm: 3980, EfficiencyKmL: 6.08},
		{VehicleID: "VH-106", Month: monthLabel(p.anchor), Liters: 1210, Cost: 2057, DistanceKm: 4120, EfficiencyKmL: 3.4},
	}
}

func (p *Provider) Maintenance() []MaintenanceRecord {
	return []MaintenanceRecord{
		{ID: "MNT-301", VehicleID: "VH-104", ServiceType: "Brake inspection", ScheduledDate: p.day(-4), Cost: 850, Status: "overdue", Priority: "critical", Technician: "R. Alvarez", Warranty: false},
		{ID: "MNT-302", VehicleID: "VH-102", ServiceType: "Oil change", ScheduledDate: p.day(3), Cost: 220, Status: "scheduled", Priority: "medium", Technician: "K. Osei", Warranty: true},
		{ID: "MNT-303", VehicleID: "VH-101", ServiceType: "Tire rotation", ScheduledDate: p.day(10), Cost: 180, Status: "scheduled", Priority: "low", Technician: "K. Osei", Warranty: true},
		{ID: "MNT-304", VehicleID: "VH-106", ServiceType: "GPS antenna replacement", ScheduledDate: p.day(1), Cost: 340, Status: "in_progress", Priority: "high", Technician: "L. Novak", Warranty: false},
		{ID: "MNT-305", VehicleID: "VH-105", ServiceType: "Annual service", ScheduledDate: p.day(-20), Cost: 1240, Status: "completed", Priority: "medium", Technician: "R. Alvarez", Warranty: false},
	}
}

func (p *Provider) Routes() []RouteRecord {
	return []RouteRecord{
		{ID: "RT-01", Name: "Chicago - Milwaukee", VehicleID: "VH-101", Origin: Position{Lat: 41.8781, Lng: -87.6298}, DestinationAddress: "1200 Industrial Pkwy, Milwaukee, WI", Destination: Position{Lat: 43.0389, Lng: -87.9065}, PlannedKm: 148, OptimizedKm: 141, TimeSavedMinutes: 12, FuelSavedLiters: 2.1, Stops: 2, TrafficAware: true},
		{ID: "RT-02", Name: "Indianapolis - Columbus", VehicleID: "VH-102", Origin: Position{Lat: 39.7684, Lng: -86.1581}, DestinationAddress: "455 Commerce Dr, Columbus, OH", Destination: Position{Lat: 39.9612, Lng: -82.9988}, PlannedKm: 285, OptimizedKm: 272, TimeSavedMinutes: 18, FuelSavedLiters: 3.9, Stops: 3, TrafficAware: true},
		{ID: "RT-03", Name: "Detroit - Toledo", VehicleID: "VH-103", Origin: Position{Lat: 42.3314, Lng: -83.0458}, DestinationAddress: "88 Harbor St, Toledo, OH", Destination: Position{Lat: 41.6528, Lng: -83.5379}, PlannedKm: 96, OptimizedKm: 94, TimeSavedMinutes: 4, FuelSavedLiters: 0.6, Stops: 1, TrafficAware: false},
		{ID: "RT-04", Name: "Springfield - St. Louis", VehicleID: "VH-105", Origin: Position{Lat: 39.7817, Lng: -89.6501}, DestinationAddress: "900 Market St, St. Louis, MO", Destination: Position{Lat: 38.6270, Lng: -90.1994}, PlannedKm: 162, OptimizedKm: 151, TimeSavedMinutes: 15, FuelSavedLiters: 3.2, Stops: 2, TrafficAware: true},
	}
}

func (p *Provider) PerformanceCategories() []Distribution {
	return []Distribution{
		{Label: "Excellent (95+)", Percentage: 33.3, Count: 2},
		{Label: "Good (90-94)", Percentage: 33.3, Count: 2},
		{Label: "Average (85-89)", Percentage: 33.4, Count: 2},
	}
}

func (p *Provider) DeliveryStatusBreakdown() []Distribution {
	return []Distribution{
		{Label: "On Time", Percentage: 87.5, Count: 1403},
		{Label: "Late", Percentage: 9.2, Count: 148},
		{Label: "Failed", Percentage: 3.3, Count: 53},
	}
}

func (p *Provider) Driver(id string) (DriverRecord, bool) {
	for _, d := range p.Drivers() {
		if d.ID == id {
			return d, true
		}
	}
	return DriverRecord{}, false
}

// Clone returns a copy that shares no slices with v.
func (v VehicleRecord) Clone() VehicleRecord {
	v.Alerts = append([]string{}, v.Alerts...)
	return v
}

func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}
