package tracking

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// CheckSpeedViolation classifies a speed sample against the road-type limit
// table. It returns nil when the speed is within limit plus tolerance;
// otherwise it appends a violation to the vehicle's fleet log and returns it.
// An unknown road type falls back to the urban limit.
func (t *Tracker) CheckSpeedViolation(ctx context.Context, vehicleID string, speedKMH float64, pos geo.Point, roadType RoadType) (*SpeedViolation, error) {
	limit := t.speedLimit(roadType)
	if speedKMH <= limit+t.cfg.Speed.ToleranceKMH {
		return nil, nil
	}

	vehicle, err := t.store.VehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	excess := speedKMH - limit
	violation := SpeedViolation{
		ID:           newID("spd"),
		VehicleID:    vehicleID,
		DriverID:     vehicle.DriverID,
		CurrentSpeed: speedKMH,
		SpeedLimit:   limit,
		ExcessSpeed:  excess,
		Position:     pos,
		RoadType:     roadType,
		Severity:     t.classifySeverity(excess),
		OccurredAt:   t.now(),
	}

	t.mu.Lock()
	t.violations[vehicle.FleetID] = append(t.violations[vehicle.FleetID], violation)
	t.mu.Unlock()

	log.WithFields(log.Fields{
		"vehicle":  vehicleID,
		"speed":    speedKMH,
		"limit":    limit,
		"severity": violation.Severity,
	}).Warn("speed violation")

	return &violation, nil
}

// ViolationFilter narrows SpeedViolations. Zero values mean no filter.
type ViolationFilter struct {
	VehicleID string
	Severity  Severity
	From      *time.Time
	To        *time.Time
}

// SpeedViolations lists the fleet's recorded violations, most recent first.
func (t *Tracker) SpeedViolations(fleetID string, f ViolationFilter) []SpeedViolation {
	t.mu.RLock()
	list := t.violations[fleetID]
	out := make([]SpeedViolation, 0, len(list))
	for _, v := range list {
		if f.VehicleID != "" && v.VehicleID != f.VehicleID {
			continue
		}
		if f.Severity != "" && v.Severity != f.Severity {
			continue
		}
		if f.From != nil && v.OccurredAt.Before(*f.From) {
			continue
		}
		if f.To != nil && v.OccurredAt.After(*f.To) {
			continue
		}
		out = append(out, v)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out
}

// speedLimit maps a road type through the configured table. The switch is
// exhaustive over RoadType; anything else defaults to urban.
func (t *Tracker) speedLimit(roadType RoadType) float64 {
	limits := t.cfg.Speed.Limits
	switch roadType {
	case RoadResidential:
		return limits.Residential
	case RoadUrban:
		return limits.Urban
	case RoadMain:
		return limits.MainRoad
	case RoadHighway:
		return limits.Highway
	case RoadMotorway:
		return limits.Motorway
	default:
		return limits.Urban
	}
}

func (t *Tracker) classifySeverity(excess float64) Severity {
	switch {
	case excess > t.cfg.Speed.SeverityHighMax:
		return SeverityCritical
	case excess > t.cfg.Speed.SeverityMediumMax:
		return SeverityHigh
	case excess > t.cfg.Speed.SeverityLowMax:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
