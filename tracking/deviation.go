package tracking

import (
	"context"
	"errors"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// CheckRouteDeviation measures the vehicle's distance to the planned
// polyline (straight lines between the route's stops, in stop order). Within
// the threshold it returns nil without touching any open episode; resolution
// is always explicit. Above the threshold it updates the route's open
// episode in place, or opens a new one.
//
// A route that does not resolve, or has fewer than two stops with
// coordinates, yields no deviation.
func (t *Tracker) CheckRouteDeviation(ctx context.Context, routeID string, pos geo.Point) (*RouteDeviation, error) {
	route, err := t.store.RouteByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, fleet.ErrRouteNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var planned []geo.Point
	for _, s := range route.Stops {
		if s.HasCoordinates() {
			planned = append(planned, geo.Point{Lat: *s.Latitude, Lng: *s.Longitude})
		}
	}
	if len(planned) < 2 {
		return nil, nil
	}

	minDistance := math.Inf(1)
	var nearestPlanned geo.Point
	for i := 0; i < len(planned)-1; i++ {
		dist, nearest := geo.DistanceToSegment(pos, planned[i], planned[i+1])
		if dist < minDistance {
			minDistance = dist
			nearestPlanned = nearest
		}
	}

	if minDistance <= t.cfg.Deviation.ThresholdMeters {
		return nil, nil
	}

	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, d := range t.deviations[routeID] {
		if d.ResolvedAt != nil {
			continue
		}
		d.DeviationMeters = math.Round(minDistance)
		d.DurationMinutes = math.Round(now.Sub(d.StartedAt).Minutes())
		d.Position = pos
		cp := *d
		return &cp, nil
	}

	deviation := &RouteDeviation{
		ID:              newID("dev"),
		RouteID:         routeID,
		VehicleID:       route.VehicleID,
		DeviationMeters: math.Round(minDistance),
		DurationMinutes: 0,
		Position:        pos,
		PlannedPosition: nearestPlanned,
		StartedAt:       now,
	}
	t.deviations[routeID] = append(t.deviations[routeID], deviation)

	log.WithFields(log.Fields{
		"route":  routeID,
		"meters": deviation.DeviationMeters,
	}).Warn("route deviation detected")

	cp := *deviation
	return &cp, nil
}

// DeviationFilter narrows RouteDeviations. Zero values mean no filter.
type DeviationFilter struct {
	RouteID    string
	OnlyActive bool
}

// RouteDeviations lists deviation episodes across the fleet's routes, most
// recently started first.
func (t *Tracker) RouteDeviations(ctx context.Context, fleetID string, f DeviationFilter) ([]RouteDeviation, error) {
	routes, err := t.store.RoutesByFleet(ctx, fleetID, fleet.RouteQuery{})
	if err != nil {
		return nil, err
	}

	t.mu.RLock()
	var out []RouteDeviation
	for _, route := range routes {
		for _, d := range t.deviations[route.ID] {
			if f.RouteID != "" && d.RouteID != f.RouteID {
				continue
			}
			if f.OnlyActive && d.ResolvedAt != nil {
				continue
			}
			out = append(out, *d)
		}
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

// ResolveRouteDeviation stamps the episode resolved, excluding it from
// active queries from then on. It reports whether the episode existed.
func (t *Tracker) ResolveRouteDeviation(routeID, deviationID string) bool {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.deviations[routeID] {
		if d.ID == deviationID {
			if d.ResolvedAt == nil {
				resolved := now
				d.ResolvedAt = &resolved
			}
			return true
		}
	}
	return false
}
