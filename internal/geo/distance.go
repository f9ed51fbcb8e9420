package geo

import (
	"fmt"
	"math"
	"strings"
)

const earthRadiusMeters = 6371000.0

// Unit is the distance unit accepted by radius searches.
type Unit string

const (
	UnitMeters     Unit = "m"
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mi"
)

// ParseUnit normalizes a user-supplied unit string. An empty string
// defaults to meters.
func ParseUnit(raw string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "m", "meter", "meters":
		return UnitMeters, nil
	case "km", "kilometer", "kilometers":
		return UnitKilometers, nil
	case "mi", "mile", "miles":
		return UnitMiles, nil
	default:
		return "", fmt.Errorf("unknown distance unit %q", raw)
	}
}

func (u Unit) ToMeters(value float64) float64 {
	switch u {
	case UnitKilometers:
		return value * 1000
	case UnitMiles:
		return value * 1609.344
	default:
		return value
	}
}

// Haversine returns the great-circle distance in meters between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Asin(math.Sqrt(a))
	return earthRadiusMeters * c
}

// ValidatePoint rejects coordinates outside the valid latitude and
// longitude ranges.
func ValidatePoint(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return fmt.Errorf("coordinates must be numbers")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}
