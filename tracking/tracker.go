package tracking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/config"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
)

// Tracker owns the transient analytics state for one service process. It is
// safe for concurrent use; every keyed collection is guarded by a single
// read-write mutex and store reads happen outside the lock.
type Tracker struct {
	store fleet.Store
	cfg   config.Config

	mu             sync.RWMutex
	etaCache       map[string]LiveETA           // route id -> latest ETA
	violations     map[string][]SpeedViolation  // fleet id -> append-only log
	deviations     map[string][]*RouteDeviation // route id -> episodes
	behaviorEvents map[string][]BehaviorEvent   // vehicle id -> append-only log
	deviceHealth   map[string]*DeviceHealth     // vehicle id -> latest record
	proximityLog   map[string][]ProximityAlert  // fleet id -> capped ring

	now func() time.Time
}

// New creates a Tracker reading from store with the given tuning.
func New(store fleet.Store, cfg config.Config) *Tracker {
	return &Tracker{
		store:          store,
		cfg:            cfg,
		etaCache:       map[string]LiveETA{},
		violations:     map[string][]SpeedViolation{},
		deviations:     map[string][]*RouteDeviation{},
		behaviorEvents: map[string][]BehaviorEvent{},
		deviceHealth:   map[string]*DeviceHealth{},
		proximityLog:   map[string][]ProximityAlert{},
		now:            time.Now,
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Prune is the retention operation for the transient logs: it drops
// violations, behavior events, and proximity alerts that occurred before
// cutoff, together with deviation episodes resolved before cutoff. Open
// deviations, device health, and the ETA cache are untouched.
func (t *Tracker) Prune(cutoff time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for fleetID, list := range t.violations {
		kept := list[:0]
		for _, v := range list {
			if !v.OccurredAt.Before(cutoff) {
				kept = append(kept, v)
			}
		}
		t.violations[fleetID] = kept
	}
	for vehicleID, list := range t.behaviorEvents {
		kept := list[:0]
		for _, e := range list {
			if !e.OccurredAt.Before(cutoff) {
				kept = append(kept, e)
			}
		}
		t.behaviorEvents[vehicleID] = kept
	}
	for fleetID, list := range t.proximityLog {
		kept := list[:0]
		for _, a := range list {
			if !a.AlertedAt.Before(cutoff) {
				kept = append(kept, a)
			}
		}
		t.proximityLog[fleetID] = kept
	}
	for routeID, list := range t.deviations {
		kept := list[:0]
		for _, d := range list {
			if d.ResolvedAt == nil || !d.ResolvedAt.Before(cutoff) {
				kept = append(kept, d)
			}
		}
		t.deviations[routeID] = kept
	}
}

// startOfDay returns midnight of ts in its own location.
func startOfDay(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
