// Package config handles analytics tuning configuration.
//
// Every heuristic constant the analytics core relies on (speed-limit table,
// rush-hour speeds, behavior weights, fuel baseline, health thresholds, ...)
// is a named field here rather than a literal in the code, since all of them
// are documented approximations. Configuration is loaded from YAML, missing
// fields fall back to Default(), and the result is validated with struct tags.
package config
