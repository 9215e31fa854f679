package tracking

import (
	"time"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// DelayStatus classifies how late a route is running.
type DelayStatus string

const (
	DelayOnTime          DelayStatus = "ON_TIME"
	DelaySlightlyDelayed DelayStatus = "SLIGHTLY_DELAYED"
	DelayDelayed         DelayStatus = "DELAYED"
	DelaySeverelyDelayed DelayStatus = "SEVERELY_DELAYED"
)

// NextStopETA summarizes the first remaining stop of a route.
type NextStopETA struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ETAMinutes int       `json:"eta_minutes"`
	ETATime    time.Time `json:"eta_time"`
	DistanceKM float64   `json:"distance_km"`
}

// LiveETA is the derived arrival estimate for an in-progress route. It is a
// snapshot, cached latest-wins per route id.
type LiveETA struct {
	RouteID               string       `json:"route_id"`
	VehicleID             string       `json:"vehicle_id"`
	CurrentStopIndex      int          `json:"current_stop_index"`
	NextStop              *NextStopETA `json:"next_stop"`
	RemainingStops        int          `json:"remaining_stops"`
	RouteCompletionETA    time.Time    `json:"route_completion_eta"`
	EstimatedTotalMinutes int          `json:"estimated_total_minutes"`
	DelayMinutes          int          `json:"delay_minutes"`
	Status                DelayStatus  `json:"status"`
}

// RoadType selects a speed limit from the configured table.
type RoadType string

const (
	RoadResidential RoadType = "RESIDENTIAL"
	RoadUrban       RoadType = "URBAN"
	RoadMain        RoadType = "MAIN_ROAD"
	RoadHighway     RoadType = "HIGHWAY"
	RoadMotorway    RoadType = "MOTORWAY"
)

// Severity grades a speed violation by excess over the limit.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// SpeedViolation is one recorded breach of a road-type speed limit.
type SpeedViolation struct {
	ID           string    `json:"id"`
	VehicleID    string    `json:"vehicle_id"`
	DriverID     string    `json:"driver_id,omitempty"`
	CurrentSpeed float64   `json:"current_speed"`
	SpeedLimit   float64   `json:"speed_limit"`
	ExcessSpeed  float64   `json:"excess_speed"`
	Position     geo.Point `json:"position"`
	RoadType     RoadType  `json:"road_type,omitempty"`
	Severity     Severity  `json:"severity"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RouteDeviation is a deviation episode: a period a vehicle spends more than
// the threshold away from its planned polyline. At most one open episode
// exists per route; detection updates it in place, resolution is explicit.
type RouteDeviation struct {
	ID              string     `json:"id"`
	RouteID         string     `json:"route_id"`
	VehicleID       string     `json:"vehicle_id"`
	DeviationMeters float64    `json:"deviation_meters"`
	DurationMinutes float64    `json:"duration_minutes"`
	Position        geo.Point  `json:"position"`
	PlannedPosition geo.Point  `json:"planned_position"`
	StartedAt       time.Time  `json:"started_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
}

// BehaviorEventType is the kind of a harsh-driving occurrence.
type BehaviorEventType string

const (
	HarshAcceleration BehaviorEventType = "HARSH_ACCELERATION"
	HarshBraking      BehaviorEventType = "HARSH_BRAKING"
	HarshCornering    BehaviorEventType = "HARSH_CORNERING"
	Speeding          BehaviorEventType = "SPEEDING"
	ExcessiveIdle     BehaviorEventType = "EXCESSIVE_IDLE"
)

// BehaviorEvent is one timed harsh-driving record. Value carries the event
// magnitude; for ExcessiveIdle it is the idle duration in minutes.
type BehaviorEvent struct {
	VehicleID  string            `json:"vehicle_id"`
	Type       BehaviorEventType `json:"type"`
	Value      float64           `json:"value"`
	Position   *geo.Point        `json:"position,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// CategoryScore is a 0-100 score with the event count that produced it.
type CategoryScore struct {
	Score  int `json:"score"`
	Events int `json:"events"`
}

// IdlingScore is a 0-100 score with the idle minutes that produced it.
type IdlingScore struct {
	Score   int     `json:"score"`
	Minutes float64 `json:"minutes"`
}

// BehaviorCategories breaks a behavior score down per category.
type BehaviorCategories struct {
	Acceleration CategoryScore `json:"acceleration"`
	Braking      CategoryScore `json:"braking"`
	Cornering    CategoryScore `json:"cornering"`
	Speeding     CategoryScore `json:"speeding"`
	Idling       IdlingScore   `json:"idling"`
}

// BehaviorComparison places a score relative to the fleet.
type BehaviorComparison struct {
	FleetAverage float64 `json:"fleet_average"`
	Percentile   int     `json:"percentile"`
	Trend        string  `json:"trend"`
}

// Period is a closed time window.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// BehaviorScore is the derived driver-behavior result for one vehicle over a
// window. It is recomputed per query, never stored.
type BehaviorScore struct {
	VehicleID       string             `json:"vehicle_id"`
	DriverID        string             `json:"driver_id,omitempty"`
	DriverName      string             `json:"driver_name,omitempty"`
	Period          Period             `json:"period"`
	OverallScore    int                `json:"overall_score"`
	Categories      BehaviorCategories `json:"categories"`
	Comparison      BehaviorComparison `json:"comparison"`
	Recommendations []string           `json:"recommendations"`
}

// FuelComparison relates an estimate to its baselines.
type FuelComparison struct {
	VehicleBaseline float64 `json:"vehicle_baseline"`
	FleetAverage    float64 `json:"fleet_average"`
	PercentSavings  int     `json:"percent_savings"`
}

// FuelEfficiency is the derived consumption estimate for one vehicle over a
// window.
type FuelEfficiency struct {
	VehicleID               string         `json:"vehicle_id"`
	Period                  Period         `json:"period"`
	TotalDistanceKM         float64        `json:"total_distance_km"`
	EstimatedFuelLiters     float64        `json:"estimated_fuel_liters"`
	AverageConsumptionL100  float64        `json:"average_consumption_l100km"`
	EfficientDrivingPercent int            `json:"efficient_driving_percent"`
	IdleFuelWasteLiters     float64        `json:"idle_fuel_waste_liters"`
	EstimatedCost           float64        `json:"estimated_cost"`
	Comparison              FuelComparison `json:"comparison"`
}

// DeviceStatus classifies a GPS device.
type DeviceStatus string

const (
	DeviceOnline   DeviceStatus = "ONLINE"
	DeviceOffline  DeviceStatus = "OFFLINE"
	DeviceDegraded DeviceStatus = "DEGRADED"
	DeviceUnknown  DeviceStatus = "UNKNOWN"
)

// HealthReading is an explicit device health update. Nil fields were not
// reported.
type HealthReading struct {
	BatteryLevel   *float64 `json:"battery_level,omitempty"`
	SignalStrength *float64 `json:"signal_strength,omitempty"`
	GPSAccuracy    *float64 `json:"gps_accuracy,omitempty"`
}

// DeviceHealth is the inferred state of a vehicle's GPS device.
type DeviceHealth struct {
	VehicleID        string       `json:"vehicle_id"`
	LicensePlate     string       `json:"license_plate"`
	Status           DeviceStatus `json:"status"`
	LastSignal       time.Time    `json:"last_signal"`
	SignalAgeSeconds int64        `json:"signal_age_seconds"`
	BatteryLevel     *float64     `json:"battery_level,omitempty"`
	SignalStrength   *float64     `json:"signal_strength,omitempty"`
	GPSAccuracy      *float64     `json:"gps_accuracy,omitempty"`
	Issues           []string     `json:"issues"`
}

// PlaybackFrame is one point of a reconstructed, evenly spaced trajectory.
type PlaybackFrame struct {
	Timestamp      time.Time `json:"timestamp"`
	Position       geo.Point `json:"position"`
	Speed          float64   `json:"speed"`
	Heading        float64   `json:"heading"`
	IsInterpolated bool      `json:"is_interpolated"`
}

// ProximityAlert signals a vehicle closing in on a target.
type ProximityAlert struct {
	ID             string    `json:"id"`
	VehicleID      string    `json:"vehicle_id"`
	TargetType     string    `json:"target_type"`
	TargetID       string    `json:"target_id"`
	TargetName     string    `json:"target_name"`
	DistanceMeters float64   `json:"distance_meters"`
	ETAMinutes     int       `json:"eta_minutes"`
	Position       geo.Point `json:"position"`
	AlertedAt      time.Time `json:"alerted_at"`
}

// Dashboard is the consolidated operational snapshot for a fleet.
type Dashboard struct {
	ActiveVehicles       int              `json:"active_vehicles"`
	TotalVehicles        int              `json:"total_vehicles"`
	OnlineDevices        int              `json:"online_devices"`
	OfflineDevices       int              `json:"offline_devices"`
	ActiveRoutes         int              `json:"active_routes"`
	DelayedRoutes        int              `json:"delayed_routes"`
	SpeedViolationsToday int              `json:"speed_violations_today"`
	ActiveDeviations     int              `json:"active_deviations"`
	AverageBehaviorScore int              `json:"average_behavior_score"`
	RecentAlerts         []ProximityAlert `json:"recent_alerts"`
}
