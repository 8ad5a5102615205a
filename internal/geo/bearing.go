// Package geo computes span bearings between survey coordinates.
package geo

import (
	"fmt"
	"math"
)

var compassOctants = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Bearing returns the initial great-circle bearing from point 1 to point 2,
// in degrees normalized to [0,360), together with its 8-point compass octant.
func Bearing(lat1, lon1, lat2, lon2 float64) (float64, string) {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(rlat2)
	x := math.Cos(rlat1)*math.Sin(rlat2) - math.Sin(rlat1)*math.Cos(rlat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)

	idx := int(math.Round(deg/45)) % 8
	return deg, compassOctants[idx]
}

// Label renders a bearing the way report cells show it, e.g. "NE (42°)".
// Degrees are truncated, not rounded.
func Label(deg float64, compass string) string {
	return fmt.Sprintf("%s (%d°)", compass, int(deg))
}
