// Package geo holds the small amount of spherical math the map needs.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusKM = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

// DistanceKM is the great-circle distance between a and b.
func DistanceKM(a, b Point) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatDistance renders metres below one kilometre ("850m") and tenths of a
// kilometre above ("1.2km").
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
