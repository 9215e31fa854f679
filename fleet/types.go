package fleet

import "time"

// RouteStatus is the lifecycle state of a delivery route.
type RouteStatus string

const (
	RoutePlanned    RouteStatus = "PLANNED"
	RouteInProgress RouteStatus = "IN_PROGRESS"
	RouteCompleted  RouteStatus = "COMPLETED"
	RouteCancelled  RouteStatus = "CANCELLED"
)

// StopStatus is the delivery state of a single stop.
type StopStatus string

const (
	StopPending   StopStatus = "PENDING"
	StopDelivered StopStatus = "DELIVERED"
	StopFailed    StopStatus = "FAILED"
	StopReturned  StopStatus = "RETURNED"
)

// VehicleStatus is the operational state of a vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
	VehicleInactive    VehicleStatus = "INACTIVE"
)

// PositionSample is one raw GPS report for a vehicle. Samples are produced
// externally and ordered by RecordedAt per vehicle.
type PositionSample struct {
	VehicleID     string    `json:"vehicle_id" bson:"vehicle_id"`
	Latitude      float64   `json:"latitude" bson:"latitude"`
	Longitude     float64   `json:"longitude" bson:"longitude"`
	Speed         float64   `json:"speed" bson:"speed"` // km/h
	Heading       float64   `json:"heading" bson:"heading"`
	EngineRunning bool      `json:"engine_running" bson:"engine_running"`
	RecordedAt    time.Time `json:"recorded_at" bson:"recorded_at"`
}

// Stop is one delivery stop on a route. Coordinates are optional; stops
// without them are skipped by the geometric checks.
type Stop struct {
	ID            string     `json:"id" bson:"_id"`
	Order         int        `json:"stop_order" bson:"stop_order"`
	Status        StopStatus `json:"status" bson:"status"`
	Latitude      *float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	RecipientName string     `json:"recipient_name,omitempty" bson:"recipient_name,omitempty"`
}

// HasCoordinates reports whether the stop carries a usable position.
func (s Stop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Resolved reports whether the stop no longer counts as remaining work.
func (s Stop) Resolved() bool {
	return s.Status == StopDelivered || s.Status == StopReturned
}

// Route is a delivery route with its ordered stops.
type Route struct {
	ID             string      `json:"id" bson:"_id"`
	FleetID        string      `json:"fleet_id" bson:"fleet_id"`
	VehicleID      string      `json:"vehicle_id" bson:"vehicle_id"`
	Status         RouteStatus `json:"status" bson:"status"`
	RouteDate      time.Time   `json:"route_date" bson:"route_date"`
	PlannedEndTime *time.Time  `json:"planned_end_time,omitempty" bson:"planned_end_time,omitempty"`
	Stops          []Stop      `json:"stops" bson:"stops"` // ascending by Order
}

// Vehicle is a fleet vehicle with its last known position and assigned
// driver, as held by the fleet data store.
type Vehicle struct {
	ID             string        `json:"id" bson:"_id"`
	FleetID        string        `json:"fleet_id" bson:"fleet_id"`
	LicensePlate   string        `json:"license_plate" bson:"license_plate"`
	DriverID       string        `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	DriverName     string        `json:"driver_name,omitempty" bson:"driver_name,omitempty"`
	Status         VehicleStatus `json:"status" bson:"status"`
	CurrentLat     *float64      `json:"current_lat,omitempty" bson:"current_lat,omitempty"`
	CurrentLng     *float64      `json:"current_lng,omitempty" bson:"current_lng,omitempty"`
	LastLocationAt *time.Time    `json:"last_location_at,omitempty" bson:"last_location_at,omitempty"`
}

// Active reports whether the vehicle counts toward the dashboard's active
// vehicle tally.
func (v Vehicle) Active() bool {
	return v.Status == VehicleAvailable || v.Status == VehicleInUse
}
