package ingest

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
)

// ParseVehiclePositions decodes a GTFS-Realtime feed and returns one position
// sample per vehicle entity that carries a position. Speed is converted from
// the feed's m/s to km/h. Entities without a position or a vehicle id are
// skipped. A missing entity timestamp falls back to the feed header timestamp.
func ParseVehiclePositions(data []byte) ([]fleet.PositionSample, error) {
	fm := gtfsrtpb.FeedMessage{}
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decoding GTFS-RT feed: %w", err)
	}

	var headerTime time.Time
	if fm.Header != nil && fm.Header.Timestamp != nil {
		headerTime = time.Unix(int64(*fm.Header.Timestamp), 0).UTC()
	}

	var samples []fleet.PositionSample
	for _, e := range fm.Entity {
		vp := e.Vehicle
		if vp == nil || vp.Position == nil {
			continue
		}
		if vp.Vehicle == nil || vp.Vehicle.Id == nil || *vp.Vehicle.Id == "" {
			continue
		}

		recordedAt := headerTime
		if vp.Timestamp != nil {
			recordedAt = time.Unix(int64(*vp.Timestamp), 0).UTC()
		}

		sample := fleet.PositionSample{
			VehicleID:     *vp.Vehicle.Id,
			Latitude:      float64(vp.Position.GetLatitude()),
			Longitude:     float64(vp.Position.GetLongitude()),
			Heading:       float64(vp.Position.GetBearing()),
			Speed:         float64(vp.Position.GetSpeed()) * 3.6,
			EngineRunning: true,
			RecordedAt:    recordedAt,
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
