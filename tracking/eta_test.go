package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

func TestLiveETAOnTime(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	seedRoute(store, "route-1", "fleet-1", "veh-1", twoStopRoute())

	eta, err := tr.LiveETA(context.Background(), "route-1", atStopOne())
	require.NoError(t, err)

	assert.Equal(t, "route-1", eta.RouteID)
	assert.Equal(t, "veh-1", eta.VehicleID)
	assert.Equal(t, 0, eta.CurrentStopIndex)
	assert.Equal(t, 2, eta.RemainingStops)

	// The vehicle is standing at the first stop.
	require.NotNil(t, eta.NextStop)
	assert.Equal(t, "stop-1", eta.NextStop.ID)
	assert.Equal(t, "Alpha", eta.NextStop.Name)
	assert.Equal(t, 0, eta.NextStop.ETAMinutes)
	assert.Equal(t, 0.0, eta.NextStop.DistanceKM)

	// No planned end on the route, so the generous default applies.
	assert.Equal(t, 0, eta.DelayMinutes)
	assert.Equal(t, DelayOnTime, eta.Status)
	assert.Greater(t, eta.EstimatedTotalMinutes, 0)
}

func TestLiveETADelayClassification(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	store.PutRoute(&fleet.Route{
		ID:             "route-1",
		FleetID:        "fleet-1",
		VehicleID:      "veh-1",
		Status:         fleet.RouteInProgress,
		RouteDate:      testClock,
		PlannedEndTime: tptr(testClock.Add(-20 * time.Minute)),
		Stops:          twoStopRoute(),
	})

	eta, err := tr.LiveETA(context.Background(), "route-1", atStopOne())
	require.NoError(t, err)

	// The planned end already passed; the delay is at least those 20 minutes
	// plus the remaining service time.
	assert.GreaterOrEqual(t, eta.DelayMinutes, 20)
	assert.NotEqual(t, DelayOnTime, eta.Status)
}

func TestLiveETASkipsResolvedStops(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	stops := twoStopRoute()
	stops[0].Status = fleet.StopDelivered
	seedRoute(store, "route-1", "fleet-1", "veh-1", stops)

	eta, err := tr.LiveETA(context.Background(), "route-1", atStopOne())
	require.NoError(t, err)

	assert.Equal(t, 1, eta.CurrentStopIndex)
	assert.Equal(t, 1, eta.RemainingStops)
	require.NotNil(t, eta.NextStop)
	assert.Equal(t, "stop-2", eta.NextStop.ID)
}

func TestLiveETACoordlessNextStop(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	stops := twoStopRoute()
	stops[0].Latitude = nil
	stops[0].Longitude = nil
	seedRoute(store, "route-1", "fleet-1", "veh-1", stops)

	eta, err := tr.LiveETA(context.Background(), "route-1", atStopOne())
	require.NoError(t, err)

	assert.Nil(t, eta.NextStop)
	assert.Equal(t, 2, eta.RemainingStops)
}

func TestLiveETARushHourSlower(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	seedRoute(store, "route-1", "fleet-1", "veh-1", twoStopRoute())

	// A few kilometres short of the first stop.
	pos := geo.Point{Lat: 48.1000, Lng: 11.4500}

	offPeak, err := tr.LiveETA(context.Background(), "route-1", pos)
	require.NoError(t, err)

	tr.now = func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) }
	rush, err := tr.LiveETA(context.Background(), "route-1", pos)
	require.NoError(t, err)

	assert.Greater(t, rush.NextStop.ETAMinutes, offPeak.NextStop.ETAMinutes)
}

func TestLiveETAUnknownRoute(t *testing.T) {
	tr, _ := newTestTracker()
	_, err := tr.LiveETA(context.Background(), "missing", atStopOne())
	assert.ErrorIs(t, err, fleet.ErrRouteNotFound)
}

func TestCachedETALatestWins(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	seedRoute(store, "route-1", "fleet-1", "veh-1", twoStopRoute())

	_, ok := tr.CachedETA("route-1")
	assert.False(t, ok)

	first, err := tr.LiveETA(context.Background(), "route-1", geo.Point{Lat: 48.1000, Lng: 11.4500})
	require.NoError(t, err)

	second, err := tr.LiveETA(context.Background(), "route-1", atStopOne())
	require.NoError(t, err)
	require.NotEqual(t, first.NextStop.ETAMinutes, second.NextStop.ETAMinutes)

	cached, ok := tr.CachedETA("route-1")
	require.True(t, ok)
	assert.Equal(t, second, cached)
}

func TestFleetLiveETAs(t *testing.T) {
	tr, store := newTestTracker()

	store.PutVehicle(&fleet.Vehicle{
		ID:         "veh-1",
		FleetID:    "fleet-1",
		Status:     fleet.VehicleInUse,
		CurrentLat: fptr(48.1000),
		CurrentLng: fptr(11.4900),
	})
	seedRoute(store, "route-1", "fleet-1", "veh-1", twoStopRoute())

	// No last known position; its route is skipped.
	seedVehicle(store, "veh-2", "fleet-1")
	seedRoute(store, "route-2", "fleet-1", "veh-2", twoStopRoute())

	etas, err := tr.FleetLiveETAs(context.Background(), "fleet-1")
	require.NoError(t, err)
	require.Len(t, etas, 1)
	assert.Equal(t, "route-1", etas[0].RouteID)
}

func TestClassifyDelayBounds(t *testing.T) {
	tr, _ := newTestTracker()

	cases := []struct {
		delay float64
		want  DelayStatus
	}{
		{0, DelayOnTime},
		{10, DelayOnTime},
		{11, DelaySlightlyDelayed},
		{30, DelaySlightlyDelayed},
		{31, DelayDelayed},
		{60, DelayDelayed},
		{61, DelaySeverelyDelayed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tr.classifyDelay(c.delay), "delay %v", c.delay)
	}
}

func TestStopName(t *testing.T) {
	named := fleet.Stop{Order: 3, RecipientName: "Acme GmbH"}
	assert.Equal(t, "Acme GmbH", stopName(named))

	unnamed := fleet.Stop{Order: 3}
	assert.Equal(t, "Stop 3", stopName(unnamed))
}
