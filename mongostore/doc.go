// Package mongostore backs the fleet store with MongoDB.
//
// Routes, vehicles and position samples live in their own collections, keyed
// by the ids the rest of the system already uses. The package satisfies
// fleet.Store so the tracker never knows whether it is reading from Mongo or
// from the in-memory store.
package mongostore
