package fleet

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned when an addressed record does not resolve.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// RouteQuery filters RoutesByFleet. Zero values mean no filter.
type RouteQuery struct {
	Status   RouteStatus
	DateFrom *time.Time
}

// Store is the read contract to the fleet data store. Implementations must
// return routes with stops ascending by Order and position samples ascending
// by RecordedAt.
type Store interface {
	// RouteByID fetches a route with its ordered stops, or ErrRouteNotFound.
	RouteByID(ctx context.Context, id string) (*Route, error)

	// RoutesByFleet fetches the fleet's routes matching the query.
	RoutesByFleet(ctx context.Context, fleetID string, q RouteQuery) ([]*Route, error)

	// VehicleByID fetches a vehicle, or ErrVehicleNotFound.
	VehicleByID(ctx context.Context, id string) (*Vehicle, error)

	// VehiclesByFleet fetches every vehicle of a fleet.
	VehiclesByFleet(ctx context.Context, fleetID string) ([]*Vehicle, error)

	// InProgressRoute fetches the vehicle's currently in-progress route, or
	// nil when it has none.
	InProgressRoute(ctx context.Context, vehicleID string) (*Route, error)

	// Positions fetches the vehicle's samples within [from, to], ordered
	// ascending by RecordedAt.
	Positions(ctx context.Context, vehicleID string, from, to time.Time) ([]PositionSample, error)
}
