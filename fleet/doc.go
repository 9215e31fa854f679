// Package fleet defines the domain records the analytics core consumes
// (position samples, routes, stops, vehicles) and the Store read contract to
// the fleet data store that owns them.
//
// The analytics core never writes through Store; vehicles, routes, stops and
// position samples remain the system of record of the surrounding fleet
// service. MemoryStore is an in-process implementation used by tests and the
// demo binary, mongostore provides the production adapter.
package fleet
