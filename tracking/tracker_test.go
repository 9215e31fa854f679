package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/config"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// Noon is outside every default rush window.
var testClock = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func newTestTracker() (*Tracker, *fleet.MemoryStore) {
	store := fleet.NewMemoryStore()
	tr := New(store, config.Default())
	tr.now = func() time.Time { return testClock }
	return tr, store
}

func fptr(v float64) *float64 { return &v }

func tptr(v time.Time) *time.Time { return &v }

func seedVehicle(store *fleet.MemoryStore, id, fleetID string) {
	store.PutVehicle(&fleet.Vehicle{
		ID:           id,
		FleetID:      fleetID,
		LicensePlate: "M-TT 42",
		DriverID:     "drv-1",
		DriverName:   "Test Driver",
		Status:       fleet.VehicleInUse,
	})
}

func seedRoute(store *fleet.MemoryStore, id, fleetID, vehicleID string, stops []fleet.Stop) {
	store.PutRoute(&fleet.Route{
		ID:        id,
		FleetID:   fleetID,
		VehicleID: vehicleID,
		Status:    fleet.RouteInProgress,
		RouteDate: testClock,
		Stops:     stops,
	})
}

func TestPrune(t *testing.T) {
	tr, _ := newTestTracker()
	cutoff := testClock.Add(-time.Hour)
	old := testClock.Add(-2 * time.Hour)

	tr.violations["f1"] = []SpeedViolation{
		{ID: "old", OccurredAt: old},
		{ID: "new", OccurredAt: testClock},
	}
	tr.behaviorEvents["v1"] = []BehaviorEvent{
		{Type: Speeding, OccurredAt: old},
		{Type: Speeding, OccurredAt: testClock},
	}
	tr.proximityLog["f1"] = []ProximityAlert{
		{ID: "old", AlertedAt: old},
		{ID: "new", AlertedAt: testClock},
	}
	tr.deviations["r1"] = []*RouteDeviation{
		{ID: "resolved-old", StartedAt: old, ResolvedAt: tptr(old)},
		{ID: "open", StartedAt: old},
		{ID: "resolved-new", StartedAt: old, ResolvedAt: tptr(testClock)},
	}

	tr.Prune(cutoff)

	assert.Len(t, tr.violations["f1"], 1)
	assert.Equal(t, "new", tr.violations["f1"][0].ID)
	assert.Len(t, tr.behaviorEvents["v1"], 1)
	assert.Len(t, tr.proximityLog["f1"], 1)

	var kept []string
	for _, d := range tr.deviations["r1"] {
		kept = append(kept, d.ID)
	}
	assert.Equal(t, []string{"open", "resolved-new"}, kept)
}

func TestNewIDPrefix(t *testing.T) {
	id := newID("spd")
	assert.Contains(t, id, "spd-")
	assert.NotEqual(t, id, newID("spd"))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 6, 2, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), startOfDay(ts))
}

// Shared geometry: two stops roughly 2.2km apart on the same latitude.
func twoStopRoute() []fleet.Stop {
	return []fleet.Stop{
		{ID: "stop-1", Order: 1, Status: fleet.StopPending, Latitude: fptr(48.1000), Longitude: fptr(11.5000), RecipientName: "Alpha"},
		{ID: "stop-2", Order: 2, Status: fleet.StopPending, Latitude: fptr(48.1000), Longitude: fptr(11.5300), RecipientName: "Beta"},
	}
}

func atStopOne() geo.Point { return geo.Point{Lat: 48.1000, Lng: 11.5000} }
