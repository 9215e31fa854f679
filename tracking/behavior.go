package tracking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// RecordBehaviorEvent appends a timed harsh-driving event for a vehicle.
// Value is the event magnitude; for ExcessiveIdle it is idle minutes.
func (t *Tracker) RecordBehaviorEvent(vehicleID string, kind BehaviorEventType, value float64, pos *geo.Point) error {
	switch kind {
	case HarshAcceleration, HarshBraking, HarshCornering, Speeding, ExcessiveIdle:
	default:
		return fmt.Errorf("unknown behavior event type %q", kind)
	}

	event := BehaviorEvent{
		VehicleID:  vehicleID,
		Type:       kind,
		Value:      value,
		Position:   pos,
		OccurredAt: t.now(),
	}

	t.mu.Lock()
	t.behaviorEvents[vehicleID] = append(t.behaviorEvents[vehicleID], event)
	t.mu.Unlock()
	return nil
}

// BehaviorScore computes the driver behavior score for a vehicle over
// [from, to]. A window without events yields the 100 baseline in every
// category.
func (t *Tracker) BehaviorScore(ctx context.Context, vehicleID string, from, to time.Time) (BehaviorScore, error) {
	vehicle, err := t.store.VehicleByID(ctx, vehicleID)
	if err != nil && !errors.Is(err, fleet.ErrVehicleNotFound) {
		return BehaviorScore{}, err
	}

	var accel, brake, corner, speeding int
	var idleMinutes float64
	for _, e := range t.eventsInWindow(vehicleID, from, to) {
		switch e.Type {
		case HarshAcceleration:
			accel++
		case HarshBraking:
			brake++
		case HarshCornering:
			corner++
		case Speeding:
			speeding++
		case ExcessiveIdle:
			idleMinutes += e.Value
		}
	}

	b := t.cfg.Behavior
	accelScore := deduct(100, float64(accel)*b.EventPenalty)
	brakeScore := deduct(100, float64(brake)*b.EventPenalty)
	cornerScore := deduct(100, float64(corner)*b.EventPenalty)
	speedingScore := deduct(100, float64(speeding)*b.SpeedingPenalty)
	idlingScore := deduct(100, idleMinutes*b.IdlePenalty)

	overall := int(math.Round(
		accelScore*b.AccelerationWeight +
			brakeScore*b.BrakingWeight +
			cornerScore*b.CorneringWeight +
			speedingScore*b.SpeedingWeight +
			idlingScore*b.IdlingWeight,
	))

	var recommendations []string
	if accelScore < b.RecommendationScore {
		recommendations = append(recommendations, "Smoother acceleration reduces fuel consumption")
	}
	if brakeScore < b.RecommendationScore {
		recommendations = append(recommendations, "Anticipatory driving allows for gradual braking")
	}
	if speedingScore < b.RecommendationScore {
		recommendations = append(recommendations, "Keep to speed limits for safety and efficiency")
	}
	if idlingScore < b.IdleRecommendationScore {
		recommendations = append(recommendations, "Switch off the engine during longer stops")
	}

	score := BehaviorScore{
		VehicleID:    vehicleID,
		Period:       Period{From: from, To: to},
		OverallScore: overall,
		Categories: BehaviorCategories{
			Acceleration: CategoryScore{Score: int(accelScore), Events: accel},
			Braking:      CategoryScore{Score: int(brakeScore), Events: brake},
			Cornering:    CategoryScore{Score: int(cornerScore), Events: corner},
			Speeding:     CategoryScore{Score: int(speedingScore), Events: speeding},
			Idling:       IdlingScore{Score: int(idlingScore), Minutes: idleMinutes},
		},
		Comparison: BehaviorComparison{
			FleetAverage: b.FleetBaseline,
			Percentile:   percentileFor(overall),
			Trend:        "STABLE",
		},
		Recommendations: recommendations,
	}
	if vehicle != nil {
		score.DriverID = vehicle.DriverID
		score.DriverName = vehicle.DriverName
	}
	return score, nil
}

// FleetBehaviorScores computes scores for every vehicle of the fleet over
// the window, best first.
func (t *Tracker) FleetBehaviorScores(ctx context.Context, fleetID string, from, to time.Time) ([]BehaviorScore, error) {
	vehicles, err := t.store.VehiclesByFleet(ctx, fleetID)
	if err != nil {
		return nil, err
	}

	scores := make([]BehaviorScore, 0, len(vehicles))
	for _, v := range vehicles {
		score, err := t.BehaviorScore(ctx, v.ID, from, to)
		if err != nil {
			log.WithFields(log.Fields{"vehicle": v.ID, "error": err}).Warn("failed to compute behavior score")
			continue
		}
		scores = append(scores, score)
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].OverallScore > scores[j].OverallScore })
	return scores, nil
}

func (t *Tracker) eventsInWindow(vehicleID string, from, to time.Time) []BehaviorEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []BehaviorEvent
	for _, e := range t.behaviorEvents[vehicleID] {
		if e.OccurredAt.Before(from) || e.OccurredAt.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func deduct(base, penalty float64) float64 {
	return math.Max(0, base-penalty)
}

// percentileFor approximates a fleet-relative percentile with a fixed step
// table; it is deliberately coarse, not a true rank.
func percentileFor(score int) int {
	switch {
	case score >= 90:
		return 95
	case score >= 80:
		return 80
	case score >= 70:
		return 60
	case score >= 60:
		return 40
	default:
		return 20
	}
}
