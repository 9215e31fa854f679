// Package tracking is the fleet GPS analytics core.
//
// A Tracker turns raw position samples and route/stop/vehicle records read
// from a fleet.Store into operational signals: live arrival estimates, speed
// violations, route-deviation episodes, driver behavior scores, fuel
// estimates, device health, trajectory playback, proximity alerts, and a
// consolidated dashboard snapshot.
//
// All derived state (violation logs, open deviations, behavior events, device
// health, recent alerts, the latest-wins ETA cache) is process-local and
// transient; the fleet data store stays authoritative for the underlying
// records, and a restart loses the derived analytics. Callers that need the
// freshest ETA must recompute before reading the cache.
package tracking
