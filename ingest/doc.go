// Package ingest adapts external realtime feeds into position samples.
//
// Fleets that already publish a GTFS-Realtime VehiclePositions feed can be
// wired into the analytics core without bespoke glue: ParseVehiclePositions
// decodes the protobuf feed and yields fleet.PositionSample values ready to
// hand to the tracker's consumers.
package ingest
