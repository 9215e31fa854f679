package tracking

import (
	"context"
	"math"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
)

// FleetDashboard composes the fleet's operational snapshot for today: vehicle
// and device counts, route delay state, violation and deviation tallies, the
// average behavior score, and the most recent proximity alerts. It holds no
// state of its own; everything is read-time fan-out over the other
// components.
func (t *Tracker) FleetDashboard(ctx context.Context, fleetID string) (Dashboard, error) {
	now := t.now()
	today := startOfDay(now)

	vehicles, err := t.store.VehiclesByFleet(ctx, fleetID)
	if err != nil {
		return Dashboard{}, err
	}
	routes, err := t.store.RoutesByFleet(ctx, fleetID, fleet.RouteQuery{DateFrom: &today})
	if err != nil {
		return Dashboard{}, err
	}

	etas, err := t.FleetLiveETAs(ctx, fleetID)
	if err != nil {
		return Dashboard{}, err
	}
	delayed := 0
	for _, e := range etas {
		if e.Status != DelayOnTime {
			delayed++
		}
	}

	health, err := t.FleetDeviceHealth(ctx, fleetID)
	if err != nil {
		return Dashboard{}, err
	}
	online, offline := 0, 0
	for _, h := range health {
		switch h.Status {
		case DeviceOnline:
			online++
		case DeviceOffline:
			offline++
		}
	}

	violations := t.SpeedViolations(fleetID, ViolationFilter{From: &today})

	deviations, err := t.RouteDeviations(ctx, fleetID, DeviationFilter{OnlyActive: true})
	if err != nil {
		return Dashboard{}, err
	}

	scores, err := t.FleetBehaviorScores(ctx, fleetID, today, now)
	if err != nil {
		return Dashboard{}, err
	}
	averageScore := 0
	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s.OverallScore
		}
		averageScore = int(math.Round(float64(sum) / float64(len(scores))))
	}

	active, activeRoutes := 0, 0
	for _, v := range vehicles {
		if v.Active() {
			active++
		}
	}
	for _, r := range routes {
		if r.Status == fleet.RouteInProgress {
			activeRoutes++
		}
	}

	return Dashboard{
		ActiveVehicles:       active,
		TotalVehicles:        len(vehicles),
		OnlineDevices:        online,
		OfflineDevices:       offline,
		ActiveRoutes:         activeRoutes,
		DelayedRoutes:        delayed,
		SpeedViolationsToday: len(violations),
		ActiveDeviations:     len(deviations),
		AverageBehaviorScore: averageScore,
		RecentAlerts:         t.ProximityAlerts(fleetID, 10),
	}, nil
}
