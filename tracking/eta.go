package tracking

import (
	"context"
	"math"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// LiveETA computes the live arrival estimate for a route given the vehicle's
// current position. The result replaces any previously cached ETA for the
// route (latest wins). Returns fleet.ErrRouteNotFound when the route does not
// resolve.
func (t *Tracker) LiveETA(ctx context.Context, routeID string, pos geo.Point) (LiveETA, error) {
	route, err := t.store.RouteByID(ctx, routeID)
	if err != nil {
		return LiveETA{}, err
	}

	now := t.now()

	currentStopIndex := -1
	var remaining []fleet.Stop
	for i, s := range route.Stops {
		if s.Resolved() {
			continue
		}
		if currentStopIndex == -1 {
			currentStopIndex = i
		}
		remaining = append(remaining, s)
	}

	var nextStop *NextStopETA
	if len(remaining) > 0 && remaining[0].HasCoordinates() {
		first := remaining[0]
		distKM := geo.HaversineKM(pos.Lat, pos.Lng, *first.Latitude, *first.Longitude)
		etaMinutes := int(math.Ceil(distKM / t.averageSpeed(now) * 60))
		nextStop = &NextStopETA{
			ID:         first.ID,
			Name:       stopName(first),
			ETAMinutes: etaMinutes,
			ETATime:    now.Add(time.Duration(etaMinutes) * time.Minute),
			DistanceKM: math.Round(distKM*10) / 10,
		}
	}

	// Chain distance current position -> stop 1 -> stop 2 -> ...; a stop
	// without coordinates breaks the chain for its link.
	var totalRemainingKM float64
	for i, s := range remaining {
		if !s.HasCoordinates() {
			continue
		}
		if i == 0 {
			totalRemainingKM += geo.HaversineKM(pos.Lat, pos.Lng, *s.Latitude, *s.Longitude)
			continue
		}
		prev := remaining[i-1]
		if prev.HasCoordinates() {
			totalRemainingKM += geo.HaversineKM(*prev.Latitude, *prev.Longitude, *s.Latitude, *s.Longitude)
		}
	}

	serviceMinutes := float64(len(remaining)) * t.cfg.ETA.StopServiceMinutes
	drivingMinutes := math.Ceil(totalRemainingKM / t.averageSpeed(now) * 60)
	estimatedTotal := int(drivingMinutes + serviceMinutes)

	plannedEnd := now.Add(time.Duration(t.cfg.ETA.DefaultRouteDurationHours * float64(time.Hour)))
	if route.PlannedEndTime != nil {
		plannedEnd = *route.PlannedEndTime
	}
	estimatedEnd := now.Add(time.Duration(estimatedTotal) * time.Minute)
	delayMinutes := int(math.Floor(estimatedEnd.Sub(plannedEnd).Minutes()))
	if delayMinutes < 0 {
		delayMinutes = 0
	}

	eta := LiveETA{
		RouteID:               routeID,
		VehicleID:             route.VehicleID,
		CurrentStopIndex:      currentStopIndex,
		NextStop:              nextStop,
		RemainingStops:        len(remaining),
		RouteCompletionETA:    estimatedEnd,
		EstimatedTotalMinutes: estimatedTotal,
		DelayMinutes:          delayMinutes,
		Status:                t.classifyDelay(float64(delayMinutes)),
	}

	t.mu.Lock()
	t.etaCache[routeID] = eta
	t.mu.Unlock()

	return eta, nil
}

// CachedETA returns the latest computed ETA for a route, if any. The cache is
// latest-wins with no history; a stale value stays until the next LiveETA
// call for the route.
func (t *Tracker) CachedETA(routeID string) (LiveETA, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	eta, ok := t.etaCache[routeID]
	return eta, ok
}

// FleetLiveETAs recomputes ETAs for every in-progress route of the fleet
// dated today or later, using each vehicle's last known position. Routes
// whose vehicle has no position are skipped.
func (t *Tracker) FleetLiveETAs(ctx context.Context, fleetID string) ([]LiveETA, error) {
	today := startOfDay(t.now())
	routes, err := t.store.RoutesByFleet(ctx, fleetID, fleet.RouteQuery{
		Status:   fleet.RouteInProgress,
		DateFrom: &today,
	})
	if err != nil {
		return nil, err
	}

	etas := make([]LiveETA, 0, len(routes))
	for _, route := range routes {
		vehicle, err := t.store.VehicleByID(ctx, route.VehicleID)
		if err != nil || vehicle.CurrentLat == nil || vehicle.CurrentLng == nil {
			continue
		}
		eta, err := t.LiveETA(ctx, route.ID, geo.Point{Lat: *vehicle.CurrentLat, Lng: *vehicle.CurrentLng})
		if err != nil {
			log.WithFields(log.Fields{"route": route.ID, "error": err}).Warn("failed to compute ETA")
			continue
		}
		etas = append(etas, eta)
	}
	return etas, nil
}

// averageSpeed is the traffic heuristic: a lower fixed speed inside the
// configured rush windows, a higher one otherwise.
func (t *Tracker) averageSpeed(at time.Time) float64 {
	hour := at.Hour()
	for _, w := range t.cfg.ETA.RushWindows {
		if hour >= w.FromHour && hour <= w.ToHour {
			return t.cfg.ETA.RushSpeedKMH
		}
	}
	return t.cfg.ETA.OffPeakSpeedKMH
}

func (t *Tracker) classifyDelay(delayMinutes float64) DelayStatus {
	switch {
	case delayMinutes > t.cfg.ETA.DelayedMaxMinutes:
		return DelaySeverelyDelayed
	case delayMinutes > t.cfg.ETA.SlightlyDelayedMaxMinutes:
		return DelayDelayed
	case delayMinutes > t.cfg.ETA.OnTimeMaxMinutes:
		return DelaySlightlyDelayed
	default:
		return DelayOnTime
	}
}

func stopName(s fleet.Stop) string {
	if s.RecipientName != "" {
		return s.RecipientName
	}
	return "Stop " + strconv.Itoa(s.Order)
}
