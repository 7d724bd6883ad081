// Package geo provides great-circle distance computation and radius
// filtering for stamps. Everything here is pure and stateless so it can be
// tested without the store and reused on both the query and streaming paths.
package geo

import (
	"math"

	"stamps/pkg/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle (haversine) distance in kilometers
// between two coordinates given in degrees.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Filter returns the stamps within radiusKm of the center, boundary
// inclusive. The output preserves the relative order of the input.
//
// This is an exhaustive O(n) scan over the input with no spatial index,
// which keeps the function trivially testable and matches the scale the
// service operates at.
func Filter(stamps []domain.Stamp, centerLat, centerLng, radiusKm float64) []domain.Stamp {
	out := make([]domain.Stamp, 0, len(stamps))
	for _, s := range stamps {
		d := DistanceKm(centerLat, centerLng, s.Coordinates.Lat, s.Coordinates.Lng)
		if d <= radiusKm {
			out = append(out, s)
		}
	}

	return out
}
