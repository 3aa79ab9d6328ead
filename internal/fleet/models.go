package fleet

import "time"

type VehicleStatus string

const (
	StatusInTransit   VehicleStatus = "In Transit"
	StatusLoading     VehicleStatus = "Loading"
	StatusDelivered   VehicleStatus = "Delivered"
	StatusMaintenance VehicleStatus = "Maintenance"
	StatusIdle        VehicleStatus = "Idle"
)

type EventStatus string

const (
	EventCompleted EventStatus = "completed"
	EventCurrent   EventStatus = "current"
	EventPending   EventStatus = "pending"
	EventDelayed   EventStatus = "delayed"
)

type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

type DriverRecord struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Phone            string   `json:"phone" yaml:"phone"`
	Email            string   `json:"email,omitempty" yaml:"email,omitempty"`
	TotalTrips       int      `json:"totalTrips" yaml:"totalTrips"`
	OnTimePercentage float64  `json:"onTimePercentage" yaml:"onTimePercentage"`
	SafetyScore      float64  `json:"safetyScore" yaml:"safetyScore"`
	CustomerRating   float64  `json:"customerRating" yaml:"customerRating"`
	MonthlyEarnings  float64  `json:"monthlyEarnings" yaml:"monthlyEarnings"`
	Rank             int      `json:"rank" yaml:"rank"`
	Certifications   []string `json:"certifications" yaml:"certifications"`
	Specializations  []string `json:"specializations" yaml:"specializations"`
}

type VehicleRecord struct {
	ID                  string        `json:"id" yaml:"id"`
	Plate               string        `json:"plate" yaml:"plate"`
	DriverID            string        `json:"driverId" yaml:"driverId"`
	Status              VehicleStatus `json:"status" yaml:"status"`
	Speed               float64       `json:"speed" yaml:"speed"`
	FuelPercent         int           `json:"fuel" yaml:"fuel"`
	BatteryPercent      int           `json:"battery" yaml:"battery"`
	SignalPercent       int           `json:"signal" yaml:"signal"`
	Position            Position      `json:"position" yaml:"position"`
	Destination         string        `json:"destination" yaml:"destination"`
	DestinationPosition Position      `json:"destinationPosition" yaml:"destinationPosition"`
	ETA                 string        `json:"eta" yaml:"eta"`
	Alerts              []string      `json:"alerts" yaml:"alerts"`
	LastUpdate          time.Time     `json:"lastUpdate" yaml:"lastUpdate"`
}

type TrackingEvent struct {
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Event     string      `json:"event" yaml:"event"`
	Location  string      `json:"location" yaml:"location"`
	Status    EventStatus `json:"status" yaml:"status"`
}

type ShipmentRecord struct {
	ID                 string          `json:"id" yaml:"id"`
	Customer           string          `json:"customer" yaml:"customer"`
	Driver             string          `json:"driver" yaml:"driver"`
	Vehicle            string          `json:"vehicle" yaml:"vehicle"`
	Status             string          `json:"status" yaml:"status"`
	ProgressPercentage int             `json:"progressPercentage" yaml:"progressPercentage"`
	TrackingEvents     []TrackingEvent `json:"trackingEvents" yaml:"trackingEvents"`
}

type FuelRecord struct {
	VehicleID     string  `json:"vehicleId" yaml:"vehicleId"`
	Month         string  `json:"month" yaml:"month"`
	Liters        float64 `json:"liters" yaml:"liters"`
	Cost          float64 `json:"cost" yaml:"cost"`
	DistanceKm    float64 `json:"distanceKm" yaml:"distanceKm"`
	EfficiencyKmL float64 `json:"efficiencyKmL" yaml:"efficiencyKmL"`
}

type MaintenanceRecord struct {
	ID            string    `json:"id" yaml:"id"`
	VehicleID     string    `json:"vehicleId" yaml:"vehicleId"`
	ServiceType   string    `json:"serviceType" yaml:"serviceType"`
	ScheduledDate time.Time `json:"scheduledDate" yaml:"scheduledDate"`
	Cost          float64   `json:"cost" yaml:"cost"`
	Status        string    `json:"status" yaml:"status"`
	Priority      string    `json:"priority" yaml:"priority"`
	Technician    string    `json:"technician" yaml:"technician"`
	Warranty      bool      `json:"warranty" yaml:"warranty"`
}

type RouteRecord struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	VehicleID          string   `json:"vehicleId" yaml:"vehicleId"`
	Origin             Position `json:"origin" yaml:"origin"`
	DestinationAddress string   `json:"destinationAddress" yaml:"destinationAddress"`
	Destination        Position `json:"destination" yaml:"destination"`
	PlannedKm          float64  `json:"plannedKm" yaml:"plannedKm"`
	OptimizedKm        float64  `json:"optimizedKm" yaml:"optimizedKm"`
	TimeSavedMinutes   int      `json:"timeSavedMinutes" yaml:"timeSavedMinutes"`
	FuelSavedLiters    float64  `json:"fuelSavedLiters" yaml:"fuelSavedLiters"`
	Stops              int      `json:"stops" yaml:"stops"`
	TrafficAware       bool     `json:"trafficAware" yaml:"trafficAware"`
}

// Distribution is one slice of a percentage breakdown. Slices of a
// breakdown are expected to total roughly 100 but nothing enforces it.
type Distribution struct {
	Label      string  `json:"label" yaml:"label"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Count      int     `json:"count" yaml:"count"`
}
