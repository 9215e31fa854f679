package tracking

import (
	"context"
	"math"
	"time"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/geo"
)

// Playback reconstructs a fixed-interval trajectory for a vehicle over
// [from, to] by linearly interpolating between its recorded samples; heading
// takes the shortest angular path. A frame is marked interpolated when it
// falls strictly between two samples. Fewer than two samples in the range
// yields an empty sequence. intervalSeconds <= 0 uses the configured
// default.
func (t *Tracker) Playback(ctx context.Context, vehicleID string, from, to time.Time, intervalSeconds int) ([]PlaybackFrame, error) {
	if intervalSeconds <= 0 {
		intervalSeconds = t.cfg.Playback.DefaultIntervalSeconds
	}

	positions, err := t.store.Positions(ctx, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	if len(positions) < 2 {
		return []PlaybackFrame{}, nil
	}

	frames := []PlaybackFrame{}
	interval := time.Duration(intervalSeconds) * time.Second

	current := from
	idx := 0
	for !current.After(to) && idx < len(positions)-1 {
		a, b := positions[idx], positions[idx+1]

		// Advance the cursor until [a, b] straddles the step time.
		if !current.Before(b.RecordedAt) {
			idx++
			continue
		}

		progress := float64(current.Sub(a.RecordedAt)) / float64(b.RecordedAt.Sub(a.RecordedAt))

		frames = append(frames, PlaybackFrame{
			Timestamp: current,
			Position: geo.Point{
				Lat: geo.Lerp(a.Latitude, b.Latitude, progress),
				Lng: geo.Lerp(a.Longitude, b.Longitude, progress),
			},
			Speed:          math.Round(geo.Lerp(a.Speed, b.Speed, progress)),
			Heading:        math.Round(geo.InterpolateHeading(a.Heading, b.Heading, progress)),
			IsInterpolated: progress > 0 && progress < 1,
		})

		current = current.Add(interval)
	}

	return frames, nil
}
