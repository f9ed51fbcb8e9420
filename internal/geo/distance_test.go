package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	cases := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		wantMeters float64
		tolerance  float64
	}{
		{
			name: "same_point",
			lat1: 55.7558, lon1: 37.6176,
			lat2: 55.7558, lon2: 37.6176,
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name: "one_degree_latitude_at_equator",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			wantMeters: 111195,
			tolerance:  100,
		},
		{
			name: "moscow_to_saint_petersburg",
			lat1: 55.7558, lon1: 37.6173,
			lat2: 59.9343, lon2: 30.3351,
			wantMeters: 634000,
			tolerance:  5000,
		},
		{
			name: "antipodal_points",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			wantMeters: math.Pi * 6371000,
			tolerance:  1,
		},
		{
			name: "symmetric",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 51.5074, lon2: -0.1278,
			wantMeters: Haversine(51.5074, -0.1278, 40.7128, -74.0060),
			tolerance:  0.0001,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Haversine(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.wantMeters) > tc.tolerance {
				t.Fatalf("Haversine(%v,%v,%v,%v) = %v, want %v (±%v)",
					tc.lat1, tc.lon1, tc.lat2, tc.lon2, got, tc.wantMeters, tc.tolerance)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	cases := []struct {
		raw     string
		want    Unit
		wantErr bool
	}{
		{raw: "", want: UnitMeters},
		{raw: "m", want: UnitMeters},
		{raw: "Meters", want: UnitMeters},
		{raw: "km", want: UnitKilometers},
		{raw: "KM", want: UnitKilometers},
		{raw: "mi", want: UnitMiles},
		{raw: "miles", want: UnitMiles},
		{raw: "furlongs", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseUnit(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseUnit(%q): expected error, got %q", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUnit(%q): unexpected error %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseUnit(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestUnitToMeters(t *testing.T) {
	if got := UnitMeters.ToMeters(250); got != 250 {
		t.Errorf("meters passthrough: got %v", got)
	}
	if got := UnitKilometers.ToMeters(1.5); got != 1500 {
		t.Errorf("km conversion: got %v", got)
	}
	if got := UnitMiles.ToMeters(1); math.Abs(got-1609.344) > 0.0001 {
		t.Errorf("mile conversion: got %v", got)
	}
}

func TestValidatePoint(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{name: "moscow", lat: 55.7558, lon: 37.6173},
		{name: "origin", lat: 0, lon: 0},
		{name: "lat_boundary", lat: 90, lon: 0},
		{name: "lon_boundary", lat: 0, lon: -180},
		{name: "lat_too_high", lat: 90.01, lon: 0, wantErr: true},
		{name: "lat_too_low", lat: -91, lon: 0, wantErr: true},
		{name: "lon_too_high", lat: 0, lon: 180.5, wantErr: true},
		{name: "lon_too_low", lat: 0, lon: -181, wantErr: true},
		{name: "nan_latitude", lat: math.NaN(), lon: 0, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePoint(tc.lat, tc.lon)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for (%v, %v)", tc.lat, tc.lon)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for (%v, %v): %v", tc.lat, tc.lon, err)
			}
		})
	}
}
