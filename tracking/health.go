package tracking

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// UpdateDeviceHealth stores the latest explicit readings for a vehicle's GPS
// device, timestamped now. Any reading past its threshold flags the device
// degraded with a matching issue.
func (t *Tracker) UpdateDeviceHealth(ctx context.Context, vehicleID string, reading HealthReading) error {
	vehicle, err := t.store.VehicleByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	h := t.cfg.Health
	status := DeviceOnline
	var issues []string
	if reading.BatteryLevel != nil && *reading.BatteryLevel < h.BatteryMinPercent {
		issues = append(issues, "Low battery")
		status = DeviceDegraded
	}
	if reading.SignalStrength != nil && *reading.SignalStrength < h.SignalMinPercent {
		issues = append(issues, "Weak signal")
		status = DeviceDegraded
	}
	if reading.GPSAccuracy != nil && *reading.GPSAccuracy > h.AccuracyMaxMeters {
		issues = append(issues, "Poor GPS accuracy")
		status = DeviceDegraded
	}

	record := &DeviceHealth{
		VehicleID:        vehicleID,
		LicensePlate:     vehicle.LicensePlate,
		Status:           status,
		LastSignal:       t.now(),
		SignalAgeSeconds: 0,
		BatteryLevel:     reading.BatteryLevel,
		SignalStrength:   reading.SignalStrength,
		GPSAccuracy:      reading.GPSAccuracy,
		Issues:           issues,
	}

	t.mu.Lock()
	t.deviceHealth[vehicleID] = record
	t.mu.Unlock()
	return nil
}

// FleetDeviceHealth reports every vehicle's device state. The signal age is
// measured from the later of the last explicit update and the vehicle's last
// known location; status is recomputed from that age on every read. Results
// come back worst first: offline, degraded, unknown, online.
func (t *Tracker) FleetDeviceHealth(ctx context.Context, fleetID string) ([]DeviceHealth, error) {
	vehicles, err := t.store.VehiclesByFleet(ctx, fleetID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	out := make([]DeviceHealth, 0, len(vehicles))

	t.mu.RLock()
	for _, v := range vehicles {
		existing := t.deviceHealth[v.ID]

		var lastSignal time.Time
		if existing != nil {
			lastSignal = existing.LastSignal
		}
		if v.LastLocationAt != nil && v.LastLocationAt.After(lastSignal) {
			lastSignal = *v.LastLocationAt
		}
		age := int64(now.Sub(lastSignal).Seconds())

		status := DeviceOnline
		var issues []string
		if existing != nil {
			status = existing.Status
			issues = append(issues, existing.Issues...)
		}
		switch {
		case age > t.cfg.Health.OfflineAgeSeconds:
			status = DeviceOffline
			issues = append(issues, fmt.Sprintf("No signal for over %d minutes", t.cfg.Health.OfflineAgeSeconds/60))
		case age > t.cfg.Health.DegradedAgeSeconds:
			status = DeviceDegraded
			issues = append(issues, fmt.Sprintf("Signal older than %d minutes", t.cfg.Health.DegradedAgeSeconds/60))
		}

		h := DeviceHealth{
			VehicleID:        v.ID,
			LicensePlate:     v.LicensePlate,
			Status:           status,
			LastSignal:       lastSignal,
			SignalAgeSeconds: age,
			Issues:           issues,
		}
		if existing != nil {
			h.BatteryLevel = existing.BatteryLevel
			h.SignalStrength = existing.SignalStrength
			h.GPSAccuracy = existing.GPSAccuracy
		}
		out = append(out, h)
	}
	t.mu.RUnlock()

	order := map[DeviceStatus]int{DeviceOffline: 0, DeviceDegraded: 1, DeviceUnknown: 2, DeviceOnline: 3}
	sort.SliceStable(out, func(i, j int) bool { return order[out[i].Status] < order[out[j].Status] })
	return out, nil
}
