package tracking

import (
	"context"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// CheckProximity emits an alert for every remaining stop of the vehicle's
// in-progress route that lies within alertMeters of the given position. The
// alert carries a walking-pace arrival estimate. Alerts land in the fleet's
// rolling log, capped at the configured size with the oldest evicted.
// alertMeters <= 0 uses the configured default.
func (t *Tracker) CheckProximity(ctx context.Context, vehicleID string, pos geo.Point, alertMeters float64) ([]ProximityAlert, error) {
	if alertMeters <= 0 {
		alertMeters = t.cfg.Proximity.DefaultAlertMeters
	}

	vehicle, err := t.store.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	route, err := t.store.InProgressRoute(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	var alerts []ProximityAlert
	if route != nil {
		now := t.now()
		for _, stop := range route.Stops {
			if stop.Resolved() || !stop.HasCoordinates() {
				continue
			}
			distance := geo.HaversineKM(pos.Lat, pos.Lng, *stop.Latitude, *stop.Longitude) * 1000
			if distance > alertMeters {
				continue
			}
			alerts = append(alerts, ProximityAlert{
				ID:             newID("prox"),
				VehicleID:      vehicleID,
				TargetType:     "STOP",
				TargetID:       stop.ID,
				TargetName:     stopName(stop),
				DistanceMeters: math.Round(distance),
				ETAMinutes:     int(math.Ceil(distance / t.cfg.Proximity.WalkingPaceMetersPerMin)),
				Position:       pos,
				AlertedAt:      now,
			})
		}
	}

	if len(alerts) > 0 {
		t.mu.Lock()
		list := append(t.proximityLog[vehicle.FleetID], alerts...)
		if max := t.cfg.Proximity.LogCap; len(list) > max {
			list = list[len(list)-max:]
		}
		t.proximityLog[vehicle.FleetID] = list
		t.mu.Unlock()

		log.WithFields(log.Fields{"vehicle": vehicleID, "alerts": len(alerts)}).Info("proximity alerts")
	}

	return alerts, nil
}

// ProximityAlerts lists the fleet's recent alerts, newest first. limit <= 0
// defaults to 50.
func (t *Tracker) ProximityAlerts(fleetID string, limit int) []ProximityAlert {
	if limit <= 0 {
		limit = 50
	}

	t.mu.RLock()
	out := append([]ProximityAlert(nil), t.proximityLog[fleetID]...)
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].AlertedAt.After(out[j].AlertedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
