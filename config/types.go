package config

// SpeedLimits is the speed-limit table keyed by road type, in km/h.
type SpeedLimits struct {
	Residential float64 `yaml:"residential" validate:"gt=0"`
	Urban       float64 `yaml:"urban" validate:"gt=0"`
	MainRoad    float64 `yaml:"mainRoad" validate:"gt=0"`
	Highway     float64 `yaml:"highway" validate:"gt=0"`
	Motorway    float64 `yaml:"motorway" validate:"gt=0"`
}

// SpeedConfig contains speed-violation detection tuning.
type SpeedConfig struct {
	Limits SpeedLimits `yaml:"limits"`
	// ToleranceKMH is added to the limit before a sample counts as a
	// violation.
	ToleranceKMH float64 `yaml:"toleranceKmh" validate:"gte=0"`
	// Severity steps on excess speed: <=Low -> LOW, <=Medium -> MEDIUM,
	// <=High -> HIGH, above -> CRITICAL.
	SeverityLowMax    float64 `yaml:"severityLowMax" validate:"gt=0"`
	SeverityMediumMax float64 `yaml:"severityMediumMax" validate:"gt=0"`
	SeverityHighMax   float64 `yaml:"severityHighMax" validate:"gt=0"`
}

// RushWindow is a daily traffic window; hours are inclusive on both ends
// (7..9 covers 07:00 through 09:59).
type RushWindow struct {
	FromHour int `yaml:"fromHour" validate:"gte=0,lte=23"`
	ToHour   int `yaml:"toHour" validate:"gte=0,lte=23"`
}

// ETAConfig contains live-ETA tuning.
type ETAConfig struct {
	RushSpeedKMH    float64      `yaml:"rushSpeedKmh" validate:"gt=0"`
	OffPeakSpeedKMH float64      `yaml:"offPeakSpeedKmh" validate:"gt=0"`
	RushWindows     []RushWindow `yaml:"rushWindows" validate:"dive"`
	// StopServiceMinutes is the fixed per-stop handling time added on top of
	// driving time.
	StopServiceMinutes float64 `yaml:"stopServiceMinutes" validate:"gte=0"`
	// DefaultRouteDurationHours is assumed when a route has no planned end.
	DefaultRouteDurationHours float64 `yaml:"defaultRouteDurationHours" validate:"gt=0"`
	// Delay classification steps in minutes.
	OnTimeMaxMinutes          float64 `yaml:"onTimeMaxMinutes" validate:"gt=0"`
	SlightlyDelayedMaxMinutes float64 `yaml:"slightlyDelayedMaxMinutes" validate:"gt=0"`
	DelayedMaxMinutes         float64 `yaml:"delayedMaxMinutes" validate:"gt=0"`
}

// DeviationConfig contains route-deviation tuning.
type DeviationConfig struct {
	ThresholdMeters float64 `yaml:"thresholdMeters" validate:"gt=0"`
}

// BehaviorConfig contains driver-behavior scoring tuning. Weights must sum
// to 1.
type BehaviorConfig struct {
	AccelerationWeight float64 `yaml:"accelerationWeight" validate:"gte=0,lte=1"`
	BrakingWeight      float64 `yaml:"brakingWeight" validate:"gte=0,lte=1"`
	CorneringWeight    float64 `yaml:"corneringWeight" validate:"gte=0,lte=1"`
	SpeedingWeight     float64 `yaml:"speedingWeight" validate:"gte=0,lte=1"`
	IdlingWeight       float64 `yaml:"idlingWeight" validate:"gte=0,lte=1"`

	// Points deducted per event (per idle minute for idling).
	EventPenalty    float64 `yaml:"eventPenalty" validate:"gt=0"`
	SpeedingPenalty float64 `yaml:"speedingPenalty" validate:"gt=0"`
	IdlePenalty     float64 `yaml:"idlePenalty" validate:"gt=0"`

	// Recommendation thresholds.
	RecommendationScore     float64 `yaml:"recommendationScore" validate:"gt=0"`
	IdleRecommendationScore float64 `yaml:"idleRecommendationScore" validate:"gt=0"`

	// FleetBaseline is the placeholder fleet-average used in per-driver
	// comparisons.
	FleetBaseline float64 `yaml:"fleetBaseline" validate:"gt=0"`
}

// FuelConfig contains fuel-efficiency estimation tuning.
type FuelConfig struct {
	BaseConsumptionL100KM  float64 `yaml:"baseConsumptionL100km" validate:"gt=0"`
	IdleBurnLitersPerHour  float64 `yaml:"idleBurnLitersPerHour" validate:"gte=0"`
	PricePerLiter          float64 `yaml:"pricePerLiter" validate:"gt=0"`
	HarshEventPenalty      float64 `yaml:"harshEventPenalty" validate:"gte=0"`
	FleetAverageL100KM     float64 `yaml:"fleetAverageL100km" validate:"gt=0"`
	IdleSpeedMaxKMH        float64 `yaml:"idleSpeedMaxKmh" validate:"gt=0"`
	EfficientSpeedMinKMH   float64 `yaml:"efficientSpeedMinKmh" validate:"gt=0"`
	EfficientSpeedMaxKMH   float64 `yaml:"efficientSpeedMaxKmh" validate:"gt=0"`
}

// HealthConfig contains GPS device health tuning.
type HealthConfig struct {
	BatteryMinPercent  float64 `yaml:"batteryMinPercent" validate:"gte=0,lte=100"`
	SignalMinPercent   float64 `yaml:"signalMinPercent" validate:"gte=0,lte=100"`
	AccuracyMaxMeters  float64 `yaml:"accuracyMaxMeters" validate:"gt=0"`
	DegradedAgeSeconds int64   `yaml:"degradedAgeSeconds" validate:"gt=0"`
	OfflineAgeSeconds  int64   `yaml:"offlineAgeSeconds" validate:"gt=0"`
}

// ProximityConfig contains proximity-alert tuning.
type ProximityConfig struct {
	DefaultAlertMeters      float64 `yaml:"defaultAlertMeters" validate:"gt=0"`
	WalkingPaceMetersPerMin float64 `yaml:"walkingPaceMetersPerMin" validate:"gt=0"`
	// LogCap bounds the per-fleet alert log; oldest entries are evicted.
	LogCap int `yaml:"logCap" validate:"gt=0"`
}

// PlaybackConfig contains trajectory playback tuning.
type PlaybackConfig struct {
	DefaultIntervalSeconds int `yaml:"defaultIntervalSeconds" validate:"gt=0"`
}

// Config is the root analytics configuration.
type Config struct {
	Speed     SpeedConfig     `yaml:"speed"`
	ETA       ETAConfig       `yaml:"eta"`
	Deviation DeviationConfig `yaml:"deviation"`
	Behavior  BehaviorConfig  `yaml:"behavior"`
	Fuel      FuelConfig      `yaml:"fuel"`
	Health    HealthConfig    `yaml:"health"`
	Proximity ProximityConfig `yaml:"proximity"`
	Playback  PlaybackConfig  `yaml:"playback"`
}
