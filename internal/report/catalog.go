package report

import "errors"

type Kind string

const (
	DriverPerformance Kind = "driver-performance"
	FleetSummary      Kind = "fleet-summary"
	ShipmentTracking  Kind = "shipment-tracking"
	Compliance        Kind = "compliance"
	FuelEfficiency    Kind = "fuel-efficiency"
	Maintenance       Kind = "maintenance"
	RouteOptimization Kind = "route-optimization"
)

var ErrUnknownReport = errors.New("unknown report")

type Definition struct {
	Kind        Kind   `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Period      string `json:"period" yaml:"period"`
}

var catalog = []Definition{
	{Kind: DriverPerformance, Title: "Driver Performance Report", Description: "Trips, on-time rate, safety and customer ratings per driver", Period: "Last 30 days"},
	{Kind: FleetSummary, Title: "Fleet Summary Report", Description: "Live vehicle status, telemetry levels and delivery outcomes", Period: "Current"},
	{Kind: ShipmentTracking, Title: "Shipment Tracking Report", Description: "Shipment progress with ordered tracking events", Period: "Today"},
	{Kind: Compliance, Title: "Compliance Report", Description: "Vehicle and driver document expiry status", Period: "Current"},
	{Kind: FuelEfficiency, Title: "Fuel Efficiency Report", Description: "Fuel consumption, cost and efficiency per vehicle", Period: "Month to date"},
	{Kind: Maintenance, Title: "Maintenance Report", Description: "Scheduled, in-progress and overdue service work", Period: "Next 30 days"},
	{Kind: RouteOptimization, Title: "Route Optimization Report", Description: "Planned versus optimized distance and savings per route", Period: "Last 30 days"},
}

func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

func Lookup(slug string) (Definition, error) {
	for _, d := range catalog {
		if string(d.Kind) == slug {
			return d, nil
		}
	}
	return Definition{}, ErrUnknownReport
}
