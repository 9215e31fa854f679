package tracking

import (
	"context"
	"math"
	"time"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// FuelEfficiency estimates consumption and cost for a vehicle over
// [from, to] from its position samples and recorded behavior events. With no
// samples in the window every figure is zero.
func (t *Tracker) FuelEfficiency(ctx context.Context, vehicleID string, from, to time.Time) (FuelEfficiency, error) {
	positions, err := t.store.Positions(ctx, vehicleID, from, to)
	if err != nil {
		return FuelEfficiency{}, err
	}

	var totalKM, idleMinutes, efficientMinutes, drivingMinutes float64
	for i := 1; i < len(positions); i++ {
		prev, curr := positions[i-1], positions[i]

		totalKM += geo.HaversineKM(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)

		elapsed := curr.RecordedAt.Sub(prev.RecordedAt).Minutes()
		switch {
		case curr.Speed < t.cfg.Fuel.IdleSpeedMaxKMH && curr.EngineRunning:
			idleMinutes += elapsed
		case curr.Speed > 0:
			drivingMinutes += elapsed
			if curr.Speed >= t.cfg.Fuel.EfficientSpeedMinKMH && curr.Speed <= t.cfg.Fuel.EfficientSpeedMaxKMH {
				efficientMinutes += elapsed
			}
		}
	}

	idleWaste := (idleMinutes / 60) * t.cfg.Fuel.IdleBurnLitersPerHour

	var harshEvents int
	for _, e := range t.eventsInWindow(vehicleID, from, to) {
		if e.Type == HarshAcceleration || e.Type == HarshBraking {
			harshEvents++
		}
	}

	// Harsh driving raises the baseline consumption by a fixed fraction per
	// event.
	consumption := t.cfg.Fuel.BaseConsumptionL100KM * (1 + float64(harshEvents)*t.cfg.Fuel.HarshEventPenalty)
	fuelLiters := (totalKM/100)*consumption + idleWaste
	cost := fuelLiters * t.cfg.Fuel.PricePerLiter

	efficientPercent := 0
	if drivingMinutes > 0 {
		efficientPercent = int(math.Round(efficientMinutes / drivingMinutes * 100))
	}

	return FuelEfficiency{
		VehicleID:               vehicleID,
		Period:                  Period{From: from, To: to},
		TotalDistanceKM:         round1(totalKM),
		EstimatedFuelLiters:     round1(fuelLiters),
		AverageConsumptionL100:  round1(consumption),
		EfficientDrivingPercent: efficientPercent,
		IdleFuelWasteLiters:     round1(idleWaste),
		EstimatedCost:           math.Round(cost*100) / 100,
		Comparison: FuelComparison{
			VehicleBaseline: t.cfg.Fuel.BaseConsumptionL100KM,
			FleetAverage:    t.cfg.Fuel.FleetAverageL100KM,
			PercentSavings:  int(math.Round((1 - consumption/t.cfg.Fuel.FleetAverageL100KM) * 100)),
		},
	}, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
