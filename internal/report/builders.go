package report

import (
	"fmt"
	"sort"
	"time"

	"backend-fleetdesk/internal/fleet"
	"backend-fleetdesk/internal/shared/geo"
)

const (
	onTimeCoachingThreshold = 90.0
	lowFuelThreshold        = 35
)

func (s *Service) buildDrivers(r *Report) {
	drivers := s.provider.Drivers()
	categories := s.provider.PerformanceCategories()

	var trips int
	var onTime, safety, rating, earnings float64
	for _, d := range drivers {
		trips += d.TotalTrips
		onTime += d.OnTimePercentage
		safety += d.SafetyScore
		rating += d.CustomerRating
		earnings += d.MonthlyEarnings
	}
	n := float64(max(len(drivers), 1))

	r.Summary = Summary{
		{Key: "totalDrivers", Label: "Total Drivers", Value: len(drivers)},
		{Key: "tripsCompleted", Label: "Trips Completed", Value: trips},
		{Key: "averageOnTimePercentage", Label: "Average On-Time %", Value: round(onTime/n, 1)},
		{Key: "averageSafetyScore", Label: "Average Safety Score", Value: round(safety/n, 1)},
		{Key: "averageCustomerRating", Label: "Average Customer Rating", Value: round(rating/n, 2)},
		{Key: "monthlyEarnings", Label: "Monthly Earnings", Value: round(earnings, 2)},
	}

	ranked := append([]fleet.DriverRecord(nil), drivers...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })

	r.Sections = []Section{
		table("Driver Performance", []column[fleet.DriverRecord]{
			{"Rank", func(d fleet.DriverRecord) string { return integer(d.Rank) }},
			{"Driver ID", func(d fleet.DriverRecord) string { return d.ID }},
			{"Name", func(d fleet.DriverRecord) string { return d.Name }},
			{"Total Trips", func(d fleet.DriverRecord) string { return integer(d.TotalTrips) }},
			{"On-Time %", func(d fleet.DriverRecord) string { return num(d.OnTimePercentage) }},
			{"Safety Score", func(d fleet.DriverRecord) string { return num(d.SafetyScore) }},
			{"Customer Rating", func(d fleet.DriverRecord) string { return num(d.CustomerRating) }},
			{"Monthly Earnings", func(d fleet.DriverRecord) string { return num(d.MonthlyEarnings) }},
			{"Certifications", func(d fleet.DriverRecord) string { return list(d.Certifications) }},
			{"Specializations", func(d fleet.DriverRecord) string { return list(d.Specializations) }},
		}, ranked),
		distributionTable("Performance Categories", "Category", "Drivers", categories),
	}
	r.Data = Dataset{Drivers: orEmpty(drivers), PerformanceCategories: orEmpty(categories)}

	if len(ranked) > 0 {
		top := ranked[0]
		r.Insights = append(r.Insights, fmt.Sprintf("%s leads the fleet with %s%% on-time delivery across %d trips", top.Name, num(top.OnTimePercentage), top.TotalTrips))
	}
	var highlyRated int
	for _, d := range drivers {
		if d.CustomerRating >= 4.8 {
			highlyRated++
		}
		if d.OnTimePercentage < onTimeCoachingThreshold {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Schedule route coaching for %s (on-time %s%%)", d.Name, num(d.OnTimePercentage)))
		}
	}
	r.Insights = append(r.Insights,
		fmt.Sprintf("%d of %d drivers hold a customer rating of 4.8 or higher", highlyRated, len(drivers)),
		fmt.Sprintf("Performance categories total %s%%", num(round(distributionTotal(categories), 1))),
	)
}

func (s *Service) buildFleet(r *Report) {
	vehicles := s.liveVehicles()
	breakdown := s.provider.DeliveryStatusBreakdown()

	counts := map[fleet.VehicleStatus]int{}
	var fuel, alerts int
	for _, v := range vehicles {
		counts[v.Status]++
		fuel += v.FuelPercent
		alerts += len(v.Alerts)
	}

	r.Summary = Summary{
		{Key: "totalVehicles", Label: "Total Vehicles", Value: len(vehicles)},
		{Key: "inTransit", Label: "In Transit", Value: counts[fleet.StatusInTransit]},
		{Key: "loading", Label: "Loading", Value: counts[fleet.StatusLoading]},
		{Key: "delivered", Label: "Delivered", Value: counts[fleet.StatusDelivered]},
		{Key: "maintenance", Label: "In Maintenance", Value: counts[fleet.StatusMaintenance]},
		{Key: "idle", Label: "Idle", Value: counts[fleet.StatusIdle]},
		{Key: "averageFuelLevel", Label: "Average Fuel Level %", Value: round(float64(fuel)/float64(max(len(vehicles), 1)), 1)},
		{Key: "activeAlerts", Label: "Active Alerts", Value: alerts},
	}

	r.Sections = []Section{
		table("Vehicles", []column[fleet.VehicleRecord]{
			{"Vehicle ID", func(v fleet.VehicleRecord) string { return v.ID }},
			{"Plate", func(v fleet.VehicleRecord) string { return v.Plate }},
			{"Driver ID", func(v fleet.VehicleRecord) string { return v.DriverID }},
			{"Status", func(v fleet.VehicleRecord) string { return string(v.Status) }},
			{"Speed (km/h)", func(v fleet.VehicleRecord) string { return num(round(v.Speed, 1)) }},
			{"Fuel %", func(v fleet.VehicleRecord) string { return integer(v.FuelPercent) }},
			{"Battery %", func(v fleet.VehicleRecord) string { return integer(v.BatteryPercent) }},
			{"Signal %", func(v fleet.VehicleRecord) string { return integer(v.SignalPercent) }},
			{"Latitude", func(v fleet.VehicleRecord) string { return num(v.Position.Lat) }},
			{"Longitude", func(v fleet.VehicleRecord) string { return num(v.Position.Lng) }},
			{"Destination", func(v fleet.VehicleRecord) string { return v.Destination }},
			{"ETA", func(v fleet.VehicleRecord) string { return v.ETA }},
			{"Alerts", func(v fleet.VehicleRecord) string { return list(v.Alerts) }},
			{"Last Update", func(v fleet.VehicleRecord) string { return stamp(v.LastUpdate) }},
		}, vehicles),
		distributionTable("Delivery Status Breakdown", "Status", "Deliveries", breakdown),
	}
	r.Data = Dataset{Vehicles: orEmpty(vehicles), DeliveryStatusBreakdown: orEmpty(breakdown)}

	r.Insights = append(r.Insights,
		fmt.Sprintf("%d of %d vehicles are on the road", counts[fleet.StatusInTransit], len(vehicles)),
		fmt.Sprintf("Delivery status breakdown totals %s%%", num(round(distributionTotal(breakdown), 1))),
	)
	for _, v := range vehicles {
		if v.FuelPercent < lowFuelThreshold {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Refuel %s (%s) at the next stop: fuel at %d%%", v.ID, v.Plate, v.FuelPercent))
		}
		if v.Status == fleet.StatusMaintenance {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Reassign loads from %s while it is in maintenance", v.ID))
		}
	}
}

type eventRow struct {
	shipmentID string
	fleet.TrackingEvent
}

func (s *Service) buildShipments(r *Report) {
	shipments := s.provider.Shipments()

	var inTransit, delayed, delivered, progress, events int
	var rows []eventRow
	for _, sh := range shipments {
		switch sh.Status {
		case "In Transit":
			inTransit++
		case "Delayed":
			delayed++
		case "Delivered":
			delivered++
		}
		progress += sh.ProgressPercentage
		events += len(sh.TrackingEvents)
		for _, ev := range sh.TrackingEvents {
			rows = append(rows, eventRow{shipmentID: sh.ID, TrackingEvent: ev})
		}
	}

	r.Summary = Summary{
		{Key: "totalShipments", Label: "Total Shipments", Value: len(shipments)},
		{Key: "inTransit", Label: "In Transit", Value: inTransit},
		{Key: "delayed", Label: "Delayed", Value: delayed},
		{Key: "delivered", Label: "Delivered", Value: delivered},
		{Key: "averageProgress", Label: "Average Progress %", Value: round(float64(progress)/float64(max(len(shipments), 1)), 1)},
		{Key: "trackingEventCount", Label: "Tracking Events", Value: events},
	}

	r.Sections = []Section{
		table("Shipments", []column[fleet.ShipmentRecord]{
			{"Shipment ID", func(sh fleet.ShipmentRecord) string { return sh.ID }},
			{"Customer", func(sh fleet.ShipmentRecord) string { return sh.Customer }},
			{"Driver", func(sh fleet.ShipmentRecord) string { return sh.Driver }},
			{"Vehicle", func(sh fleet.ShipmentRecord) string { return sh.Vehicle }},
			{"Status", func(sh fleet.ShipmentRecord) string { return sh.Status }},
			{"Progress %", func(sh fleet.ShipmentRecord) string { return integer(sh.ProgressPercentage) }},
			{"Events", func(sh fleet.ShipmentRecord) string { return integer(len(sh.TrackingEvents)) }},
		}, shipments),
		table("Tracking Events", []column[eventRow]{
			{"Shipment ID", func(e eventRow) string { return e.shipmentID }},
			{"Timestamp", func(e eventRow) string { return stamp(e.Timestamp) }},
			{"Event", func(e eventRow) string { return e.Event }},
			{"Location", func(e eventRow) string { return e.Location }},
			{"Status", func(e eventRow) string { return string(e.Status) }},
		}, rows),
	}
	r.Data = Dataset{Shipments: orEmpty(shipments)}

	r.Insights = append(r.Insights, fmt.Sprintf("%d of %d shipments delivered", delivered, len(shipments)))
	for _, sh := range shipments {
		for _, ev := range sh.TrackingEvents {
			if ev.Status == fleet.EventDelayed {
				r.Recommendations = append(r.Recommendations, fmt.Sprintf("Notify %s about the delay on %s (%s at %s)", sh.Customer, sh.ID, ev.Event, ev.Location))
			}
		}
	}
}

func (s *Service) buildCompliance(r *Report, now time.Time) {
	records := s.provider.Compliance()
	entries := make([]ComplianceEntry, 0, len(records))
	counts := map[fleet.ComplianceStatus]int{}
	for _, rec := range records {
		entry := ComplianceEntry{ComplianceRecord: rec, OverallStatus: rec.OverallStatus(now)}
		if next, ok := rec.NextExpiry(); ok {
			entry.NextDocument = next.Name
			entry.DaysUntilExpiry = next.DaysUntil(now)
		}
		counts[entry.OverallStatus]++
		entries = append(entries, entry)
	}

	rate := 0.0
	if len(entries) > 0 {
		rate = round(float64(counts[fleet.Compliant])/float64(len(entries))*100, 1)
	}
	r.Summary = Summary{
		{Key: "totalComplianceRecords", Label: "Total Records", Value: len(entries)},
		{Key: "compliant", Label: "Compliant", Value: counts[fleet.Compliant]},
		{Key: "warning", Label: "Warning", Value: counts[fleet.Warning]},
		{Key: "critical", Label: "Critical", Value: counts[fleet.Critical]},
		{Key: "nonCompliant", Label: "Non-Compliant", Value: counts[fleet.NonCompliant]},
		{Key: "complianceRate", Label: "Compliance Rate %", Value: rate},
	}

	r.Sections = []Section{
		table("Compliance", []column[ComplianceEntry]{
			{"Subject ID", func(e ComplianceEntry) string { return e.SubjectID }},
			{"Subject", func(e ComplianceEntry) string { return e.SubjectName }},
			{"Type", func(e ComplianceEntry) string { return e.Kind }},
			{"Next Document", func(e ComplianceEntry) string { return e.NextDocument }},
			{"Expiry Date", func(e ComplianceEntry) string {
				next, _ := e.NextExpiry()
				return date(next.ExpiryDate)
			}},
			{"Days Until Expiry", func(e ComplianceEntry) string { return integer(e.DaysUntilExpiry) }},
			{"Status", func(e ComplianceEntry) string { return string(e.OverallStatus) }},
		}, entries),
	}
	r.Data = Dataset{ComplianceRecords: orEmpty(entries)}

	r.Insights = append(r.Insights, fmt.Sprintf("%s%% of tracked vehicles and drivers are fully compliant", num(rate)))
	for _, e := range entries {
		switch e.OverallStatus {
		case fleet.NonCompliant:
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Renew %s for %s immediately: overdue by %d days", e.NextDocument, e.SubjectName, -e.DaysUntilExpiry))
		case fleet.Critical:
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Book %s renewal for %s within %d days", e.NextDocument, e.SubjectName, e.DaysUntilExpiry))
		}
	}
}

func (s *Service) buildFuel(r *Report) {
	records := s.provider.Fuel()

	var liters, cost, distance float64
	for _, f := range records {
		liters += f.Liters
		cost += f.Cost
		distance += f.DistanceKm
	}
	efficiency, perKm := 0.0, 0.0
	if liters > 0 {
		efficiency = round(distance/liters, 2)
	}
	if distance > 0 {
		perKm = round(cost/distance, 3)
	}

	r.Summary = Summary{
		{Key: "totalFuelRecords", Label: "Vehicles Reported", Value: len(records)},
		{Key: "litersConsumed", Label: "Liters Consumed", Value: round(liters, 1)},
		{Key: "fuelCost", Label: "Fuel Cost", Value: round(cost, 2)},
		{Key: "distanceKm", Label: "Distance (km)", Value: round(distance, 1)},
		{Key: "averageEfficiencyKmL", Label: "Average Efficiency (km/L)", Value: efficiency},
		{Key: "costPerKm", Label: "Cost per km", Value: perKm},
	}

	r.Sections = []Section{
		table("Fuel Consumption", []column[fleet.FuelRecord]{
			{"Vehicle ID", func(f fleet.FuelRecord) string { return f.VehicleID }},
			{"Month", func(f fleet.FuelRecord) string { return f.Month }},
			{"Liters", func(f fleet.FuelRecord) string { return num(f.Liters) }},
			{"Cost", func(f fleet.FuelRecord) string { return num(f.Cost) }},
			{"Distance (km)", func(f fleet.FuelRecord) string { return num(f.DistanceKm) }},
			{"Efficiency (km/L)", func(f fleet.FuelRecord) string { return num(f.EfficiencyKmL) }},
		}, records),
	}
	r.Data = Dataset{FuelRecords: orEmpty(records)}

	if len(records) > 0 {
		best, worst := records[0], records[0]
		for _, f := range records[1:] {
			if f.EfficiencyKmL > best.EfficiencyKmL {
				best = f
			}
			if f.EfficiencyKmL < worst.EfficiencyKmL {
				worst = f
			}
		}
		r.Insights = append(r.Insights, fmt.Sprintf("%s is the most efficient vehicle at %s km/L", best.VehicleID, num(best.EfficiencyKmL)))
		if worst.EfficiencyKmL < efficiency {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Review idling and tire pressure on %s (%s km/L against a fleet average of %s)", worst.VehicleID, num(worst.EfficiencyKmL), num(efficiency)))
		}
	}
}

func (s *Service) buildMaintenance(r *Report) {
	records := s.provider.Maintenance()

	counts := map[string]int{}
	var cost float64
	for _, m := range records {
		counts[m.Status]++
		cost += m.Cost
	}

	r.Summary = Summary{
		{Key: "totalMaintenanceRecords", Label: "Work Orders", Value: len(records)},
		{Key: "scheduled", Label: "Scheduled", Value: counts["scheduled"]},
		{Key: "inProgress", Label: "In Progress", Value: counts["in_progress"]},
		{Key: "overdue", Label: "Overdue", Value: counts["overdue"]},
		{Key: "completed", Label: "Completed", Value: counts["completed"]},
		{Key: "maintenanceCost", Label: "Maintenance Cost", Value: round(cost, 2)},
	}

	r.Sections = []Section{
		table("Maintenance Schedule", []column[fleet.MaintenanceRecord]{
			{"Work Order", func(m fleet.MaintenanceRecord) string { return m.ID }},
			{"Vehicle ID", func(m fleet.MaintenanceRecord) string { return m.VehicleID }},
			{"Service", func(m fleet.MaintenanceRecord) string { return m.ServiceType }},
			{"Scheduled Date", func(m fleet.MaintenanceRecord) string { return date(m.ScheduledDate) }},
			{"Cost", func(m fleet.MaintenanceRecord) string { return num(m.Cost) }},
			{"Status", func(m fleet.MaintenanceRecord) string { return m.Status }},
			{"Priority", func(m fleet.MaintenanceRecord) string { return m.Priority }},
			{"Technician", func(m fleet.MaintenanceRecord) string { return m.Technician }},
			{"Warranty", func(m fleet.MaintenanceRecord) string { return yesNo(m.Warranty) }},
		}, records),
	}
	r.Data = Dataset{MaintenanceRecords: orEmpty(records)}

	r.Insights = append(r.Insights, fmt.Sprintf("%d open work orders", counts["scheduled"]+counts["in_progress"]+counts["overdue"]))
	for _, m := range records {
		if m.Status == "overdue" {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Take %s off rotation until the %s is done", m.VehicleID, m.ServiceType))
		}
	}
}

func (s *Service) buildRoutes(r *Report) {
	routes := s.provider.Routes()

	var planned, optimized, fuel float64
	var minutes int
	for _, rt := range routes {
		planned += rt.PlannedKm
		optimized += rt.OptimizedKm
		fuel += rt.FuelSavedLiters
		minutes += rt.TimeSavedMinutes
	}

	r.Summary = Summary{
		{Key: "totalRoutes", Label: "Routes Analyzed", Value: len(routes)},
		{Key: "plannedKm", Label: "Planned Distance (km)", Value: round(planned, 1)},
		{Key: "optimizedKm", Label: "Optimized Distance (km)", Value: round(optimized, 1)},
		{Key: "distanceSavedKm", Label: "Distance Saved (km)", Value: round(planned-optimized, 1)},
		{Key: "timeSavedMinutes", Label: "Time Saved (min)", Value: minutes},
		{Key: "fuelSavedLiters", Label: "Fuel Saved (L)", Value: round(fuel, 1)},
	}

	r.Sections = []Section{
		table("Route Optimization", []column[fleet.RouteRecord]{
			{"Route ID", func(rt fleet.RouteRecord) string { return rt.ID }},
			{"Route", func(rt fleet.RouteRecord) string { return rt.Name }},
			{"Vehicle ID", func(rt fleet.RouteRecord) string { return rt.VehicleID }},
			{"Destination", func(rt fleet.RouteRecord) string { return rt.DestinationAddress }},
			{"Direct (km)", func(rt fleet.RouteRecord) string {
				return num(round(geo.HaversineKm(rt.Origin.Lat, rt.Origin.Lng, rt.Destination.Lat, rt.Destination.Lng), 1))
			}},
			{"Planned (km)", func(rt fleet.RouteRecord) string { return num(rt.PlannedKm) }},
			{"Optimized (km)", func(rt fleet.RouteRecord) string { return num(rt.OptimizedKm) }},
			{"Saved %", func(rt fleet.RouteRecord) string { return num(savedPercent(rt)) }},
			{"Time Saved (min)", func(rt fleet.RouteRecord) string { return integer(rt.TimeSavedMinutes) }},
			{"Fuel Saved (L)", func(rt fleet.RouteRecord) string { return num(rt.FuelSavedLiters) }},
			{"Stops", func(rt fleet.RouteRecord) string { return integer(rt.Stops) }},
			{"Traffic Aware", func(rt fleet.RouteRecord) string { return yesNo(rt.TrafficAware) }},
		}, routes),
	}
	r.Data = Dataset{Routes: orEmpty(routes)}

	if planned > 0 {
		r.Insights = append(r.Insights, fmt.Sprintf("Optimization trims %s%% of planned distance", num(round((planned-optimized)/planned*100, 1))))
	}
	for _, rt := range routes {
		if !rt.TrafficAware {
			r.Recommendations = append(r.Recommendations, fmt.Sprintf("Enable traffic-aware planning on %s", rt.Name))
		}
	}
}

func savedPercent(rt fleet.RouteRecord) float64 {
	if rt.PlannedKm == 0 {
		return 0
	}
	return round((rt.PlannedKm-rt.OptimizedKm)/rt.PlannedKm*100, 1)
}

func distributionTable(title, labelHeader, countHeader string, dist []fleet.Distribution) Section {
	return table(title, []column[fleet.Distribution]{
		{labelHeader, func(d fleet.Distribution) string { return d.Label }},
		{"Percentage", func(d fleet.Distribution) string { return num(d.Percentage) }},
		{countHeader, func(d fleet.Distribution) string { return integer(d.Count) }},
	}, dist)
}

func distributionTotal(dist []fleet.Distribution) float64 {
	var total float64
	for _, d := range dist {
		total += d.Percentage
	}
	return total
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
