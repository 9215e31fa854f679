package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
)

func TestUpdateDeviceHealthDegraded(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")

	err := tr.UpdateDeviceHealth(context.Background(), "veh-1", HealthReading{
		BatteryLevel:   fptr(10),
		SignalStrength: fptr(25),
		GPSAccuracy:    fptr(80),
	})
	require.NoError(t, err)

	record := tr.deviceHealth["veh-1"]
	require.NotNil(t, record)
	assert.Equal(t, DeviceDegraded, record.Status)
	assert.Equal(t, []string{"Low battery", "Weak signal", "Poor GPS accuracy"}, record.Issues)
	assert.Equal(t, testClock, record.LastSignal)
}

func TestUpdateDeviceHealthHealthyReading(t *testing.T) {
	tr, store := newTestTracker()
	seedVehicle(store, "veh-1", "fleet-1")

	err := tr.UpdateDeviceHealth(context.Background(), "veh-1", HealthReading{
		BatteryLevel: fptr(90),
	})
	require.NoError(t, err)

	record := tr.deviceHealth["veh-1"]
	require.NotNil(t, record)
	assert.Equal(t, DeviceOnline, record.Status)
	assert.Empty(t, record.Issues)
}

func TestUpdateDeviceHealthUnknownVehicle(t *testing.T) {
	tr, _ := newTestTracker()
	err := tr.UpdateDeviceHealth(context.Background(), "missing", HealthReading{})
	assert.ErrorIs(t, err, fleet.ErrVehicleNotFound)
}

func TestFleetDeviceHealthAges(t *testing.T) {
	tr, store := newTestTracker()

	fresh := testClock.Add(-2 * time.Minute)
	stale := testClock.Add(-20 * time.Minute)
	dead := testClock.Add(-2 * time.Hour)

	store.PutVehicle(&fleet.Vehicle{ID: "veh-fresh", FleetID: "fleet-1", Status: fleet.VehicleInUse, LastLocationAt: &fresh})
	store.PutVehicle(&fleet.Vehicle{ID: "veh-stale", FleetID: "fleet-1", Status: fleet.VehicleInUse, LastLocationAt: &stale})
	store.PutVehicle(&fleet.Vehicle{ID: "veh-dead", FleetID: "fleet-1", Status: fleet.VehicleInUse, LastLocationAt: &dead})

	health, err := tr.FleetDeviceHealth(context.Background(), "fleet-1")
	require.NoError(t, err)
	require.Len(t, health, 3)

	// Worst first.
	assert.Equal(t, "veh-dead", health[0].VehicleID)
	assert.Equal(t, DeviceOffline, health[0].Status)
	assert.Equal(t, int64(7200), health[0].SignalAgeSeconds)
	assert.Contains(t, health[0].Issues, "No signal for over 60 minutes")

	assert.Equal(t, "veh-stale", health[1].VehicleID)
	assert.Equal(t, DeviceDegraded, health[1].Status)
	assert.Contains(t, health[1].Issues, "Signal older than 10 minutes")

	assert.Equal(t, "veh-fresh", health[2].VehicleID)
	assert.Equal(t, DeviceOnline, health[2].Status)
	assert.Equal(t, int64(120), health[2].SignalAgeSeconds)
	assert.Empty(t, health[2].Issues)
}

func TestFleetDeviceHealthCarriesReadings(t *testing.T) {
	tr, store := newTestTracker()
	fresh := testClock.Add(-time.Minute)
	store.PutVehicle(&fleet.Vehicle{ID: "veh-1", FleetID: "fleet-1", Status: fleet.VehicleInUse, LastLocationAt: &fresh})

	require.NoError(t, tr.UpdateDeviceHealth(context.Background(), "veh-1", HealthReading{BatteryLevel: fptr(10)}))

	health, err := tr.FleetDeviceHealth(context.Background(), "fleet-1")
	require.NoError(t, err)
	require.Len(t, health, 1)

	// The low-battery reading keeps the device degraded despite a fresh
	// signal.
	assert.Equal(t, DeviceDegraded, health[0].Status)
	require.NotNil(t, health[0].BatteryLevel)
	assert.Equal(t, 10.0, *health[0].BatteryLevel)
	assert.Contains(t, health[0].Issues, "Low battery")
}

func TestFleetDeviceHealthExplicitUpdateWins(t *testing.T) {
	tr, store := newTestTracker()
	old := testClock.Add(-3 * time.Hour)
	store.PutVehicle(&fleet.Vehicle{ID: "veh-1", FleetID: "fleet-1", Status: fleet.VehicleInUse, LastLocationAt: &old})

	// The explicit update is newer than the last stored location.
	require.NoError(t, tr.UpdateDeviceHealth(context.Background(), "veh-1", HealthReading{BatteryLevel: fptr(80)}))

	health, err := tr.FleetDeviceHealth(context.Background(), "fleet-1")
	require.NoError(t, err)
	require.Len(t, health, 1)
	assert.Equal(t, DeviceOnline, health[0].Status)
	assert.Equal(t, int64(0), health[0].SignalAgeSeconds)
}
