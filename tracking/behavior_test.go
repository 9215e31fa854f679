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

func scoreWindow() (time.Time, time.Time) {
	return testClock.Add(-24 * time.Hour), testClock
}

func TestRecordBehaviorEventRejectsUnknownKind(t *testing.T) {
	tr, _ := newTestTracker()
	err := tr.RecordBehaviorEvent("veh-1", BehaviorEventType("TAILGATING"), 1, nil)
	assert.Error(t, err)
}

func TestBehaviorScoreNoEvents(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	from, to := scoreWindow()

	score, err := tr.BehaviorScore(context.Background(), "veh-1", from, to)
	require.NoError(t, err)

	assert.Equal(t, 100, score.OverallScore)
	assert.Equal(t, 100, score.Categories.Acceleration.Score)
	assert.Equal(t, 100, score.Categories.Braking.Score)
	assert.Equal(t, 100, score.Categories.Cornering.Score)
	assert.Equal(t, 100, score.Categories.Speeding.Score)
	assert.Equal(t, 100, score.Categories.Idling.Score)
	assert.Empty(t, score.Recommendations)
	assert.Equal(t, "Test Driver", score.DriverName)
	assert.Equal(t, 75.0, score.Comparison.FleetAverage)
	assert.Equal(t, 95, score.Comparison.Percentile)
	assert.Equal(t, "STABLE", score.Comparison.Trend)
}

func TestBehaviorScoreWeightedDeductions(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	from, to := scoreWindow()

	pos := &geo.Point{Lat: 48.1, Lng: 11.5}
	for i := 0; i < 7; i++ {
		require.NoError(t, tr.RecordBehaviorEvent("veh-1", HarshAcceleration, 3.2, pos))
	}
	require.NoError(t, tr.RecordBehaviorEvent("veh-1", ExcessiveIdle, 15, nil))

	score, err := tr.BehaviorScore(context.Background(), "veh-1", from, to)
	require.NoError(t, err)

	// 7 events at 5 points each; 15 idle minutes at 2 points each.
	assert.Equal(t, 65, score.Categories.Acceleration.Score)
	assert.Equal(t, 7, score.Categories.Acceleration.Events)
	assert.Equal(t, 70, score.Categories.Idling.Score)
	assert.Equal(t, 15.0, score.Categories.Idling.Minutes)

	// 65*0.20 + 100*0.25 + 100*0.15 + 100*0.30 + 70*0.10 = 90
	assert.Equal(t, 90, score.OverallScore)
	assert.Equal(t, 95, score.Comparison.Percentile)

	assert.Contains(t, score.Recommendations, "Smoother acceleration reduces fuel consumption")
	assert.Contains(t, score.Recommendations, "Switch off the engine during longer stops")
	assert.Len(t, score.Recommendations, 2)
}

func TestBehaviorScoreFloorsAtZero(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	from, to := scoreWindow()

	for i := 0; i < 30; i++ {
		require.NoError(t, tr.RecordBehaviorEvent("veh-1", Speeding, 20, nil))
	}

	score, err := tr.BehaviorScore(context.Background(), "veh-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 0, score.Categories.Speeding.Score)
	assert.Equal(t, 70, score.OverallScore)
	assert.Contains(t, score.Recommendations, "Keep to speed limits for safety and efficiency")
}

func TestBehaviorScoreWindowing(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	from, to := scoreWindow()

	tr.now = func() time.Time { return from.Add(-time.Minute) }
	require.NoError(t, tr.RecordBehaviorEvent("veh-1", HarshBraking, 4, nil))
	tr.now = func() time.Time { return testClock }
	require.NoError(t, tr.RecordBehaviorEvent("veh-1", HarshBraking, 4, nil))

	score, err := tr.BehaviorScore(context.Background(), "veh-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Categories.Braking.Events)
}

func TestBehaviorScoreUnknownVehicle(t *testing.T) {
	tr, _ := newTestTracker()
	from, to := scoreWindow()

	require.NoError(t, tr.RecordBehaviorEvent("ghost", HarshBraking, 4, nil))

	score, err := tr.BehaviorScore(context.Background(), "ghost", from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Categories.Braking.Events)
	assert.Empty(t, score.DriverID)
}

func TestFleetBehaviorScoresBestFirst(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")
	store.PutVehicle(&fleet.Vehicle{ID: "veh-2", FleetID: "fleet-1", Status: fleet.VehicleInUse})
	from, to := scoreWindow()

	for i := 0; i < 5; i++ {
		require.NoError(t, tr.RecordBehaviorEvent("veh-1", Speeding, 25, nil))
	}

	scores, err := tr.FleetBehaviorScores(context.Background(), "fleet-1", from, to)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "veh-2", scores[0].VehicleID)
	assert.Greater(t, scores[0].OverallScore, scores[1].OverallScore)
}

func TestPercentileFor(t *testing.T) {
	cases := []struct{ score, want int }{
		{95, 95}, {90, 95}, {85, 80}, {75, 60}, {65, 40}, {30, 20},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, percentileFor(c.score), "score %d", c.score)
	}
}
