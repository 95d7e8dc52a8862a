// Package geo computes great-circle distances between coordinates.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used throughout discovery.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the Haversine great-circle distance in miles between
// two points. Pure and symmetric; callers validate coordinate ranges before
// calling (see domain.ValidCoordinates).
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
