package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the documented baseline tuning. The values mirror the
// Munich-area heuristics the analytics were calibrated against.
func Default() Config {
	return Config{
		Speed: SpeedConfig{
			Limits: SpeedLimits{
				Residential: 30,
				Urban:       50,
				MainRoad:    60,
				Highway:     100,
				Motorway:    130,
			},
			ToleranceKMH:      10,
			SeverityLowMax:    15,
			SeverityMediumMax: 25,
			SeverityHighMax:   40,
		},
		ETA: ETAConfig{
			RushSpeedKMH:    18,
			OffPeakSpeedKMH: 25,
			RushWindows: []RushWindow{
				{FromHour: 7, ToHour: 9},
				{FromHour: 16, ToHour: 19},
			},
			StopServiceMinutes:        3,
			DefaultRouteDurationHours: 4,
			OnTimeMaxMinutes:          10,
			SlightlyDelayedMaxMinutes: 30,
			DelayedMaxMinutes:         60,
		},
		Deviation: DeviationConfig{
			ThresholdMeters: 500,
		},
		Behavior: BehaviorConfig{
			AccelerationWeight:      0.20,
			BrakingWeight:           0.25,
			CorneringWeight:         0.15,
			SpeedingWeight:          0.30,
			IdlingWeight:            0.10,
			EventPenalty:            5,
			SpeedingPenalty:         10,
			IdlePenalty:             2,
			RecommendationScore:     70,
			IdleRecommendationScore: 80,
			FleetBaseline:           75,
		},
		Fuel: FuelConfig{
			BaseConsumptionL100KM: 8.5,
			IdleBurnLitersPerHour: 0.8,
			PricePerLiter:         1.70,
			HarshEventPenalty:     0.02,
			FleetAverageL100KM:    9.0,
			IdleSpeedMaxKMH:       5,
			EfficientSpeedMinKMH:  30,
			EfficientSpeedMaxKMH:  60,
		},
		Health: HealthConfig{
			BatteryMinPercent:  20,
			SignalMinPercent:   30,
			AccuracyMaxMeters:  50,
			DegradedAgeSeconds: 600,
			OfflineAgeSeconds:  3600,
		},
		Proximity: ProximityConfig{
			DefaultAlertMeters:      500,
			WalkingPaceMetersPerMin: 400,
			LogCap:                  100,
		},
		Playback: PlaybackConfig{
			DefaultIntervalSeconds: 5,
		},
	}
}

// Load reads a YAML tuning file, overlays it on Default(), and validates the
// result. An empty path returns Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks a configuration against its struct tags.
func Validate(cfg Config) error {
	v := validator.New()
	return v.Struct(cfg)
}
