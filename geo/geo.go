package geo

import "math"

// EarthRadiusKM is the mean Earth radius used for haversine distances.
const EarthRadiusKM = 6371.0

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKM returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// DistanceKM returns the great-circle distance between two points in
// kilometers.
func DistanceKM(p, q Point) float64 {
	return HaversineKM(p.Lat, p.Lng, q.Lat, q.Lng)
}

// DistanceToSegment projects point onto the finite segment [start, end] and
// returns the distance in meters together with the nearest point on the
// segment. The projection parameter is clamped to [0,1], so the nearest point
// never lies beyond an endpoint. A zero-length segment degrades to the
// point-to-point distance.
//
// The projection itself is done in degree space, matching how the planned
// polylines are built; only the final distance goes through the haversine.
func DistanceToSegment(point, start, end Point) (float64, Point) {
	dx := end.Lat - start.Lat
	dy := end.Lng - start.Lng
	l2 := dx*dx + dy*dy

	if l2 == 0 {
		return DistanceKM(point, start) * 1000, start
	}

	t := ((point.Lat-start.Lat)*dx + (point.Lng-start.Lng)*dy) / l2
	t = math.Max(0, math.Min(1, t))

	nearest := Point{
		Lat: start.Lat + t*dx,
		Lng: start.Lng + t*dy,
	}
	return DistanceKM(point, nearest) * 1000, nearest
}

// InterpolateHeading interpolates between two headings in degrees, taking the
// shortest angular path across the 0/360 boundary. progress 0 returns from,
// progress 1 returns to. The result is normalized to [0,360).
func InterpolateHeading(from, to, progress float64) float64 {
	diff := to - from
	if diff > 180 {
		diff -= 360
	}
	if diff < -180 {
		diff += 360
	}

	result := from + diff*progress
	if result < 0 {
		result += 360
	}
	if result >= 360 {
		result -= 360
	}
	return result
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
