package units

import (
	"errors"
	"math"
	"testing"
)

func isClose(a, b, relTol, absTol float64) bool {
	return math.Abs(a-b) <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

func TestToMPH(t *testing.T) {
	cases := []struct {
		unit SpeedUnit
		want float64
	}{
		{MPH, 1},
		{KMPerHour, 0.621371},
		{MPerHour, 0.00062137},
		{YdPerHour, 0.00056818},
		{FtPerHour, 0.00018939388},
		{MPM, 60},
		{KMPerMinute, 37.28227},
		{MPerMinute, 0.03728236},
		{YdPerMinute, 0.03409091},
		{FtPerMinute, 0.01136363333},
		{MPS, 3600},
		{KMPerSecond, 2236.93629},
		{MPerSecond, 2.23694},
		{YdPerSecond, 2.04545},
		{FtPerSecond, 0.681818},
	}
	for _, tc := range cases {
		t.Run(string(tc.unit), func(t *testing.T) {
			got, err := ToMPH(1, tc.unit)
			if err != nil {
				t.Fatalf("ToMPH: %v", err)
			}
			if !isClose(got, tc.want, 1e-5, 1e-8) {
				t.Fatalf("ToMPH(1, %s) = %v, want %v", tc.unit, got, tc.want)
			}
		})
	}
}

func TestFromMPH(t *testing.T) {
	cases := []struct {
		unit SpeedUnit
		want float64
	}{
		{MPH, 1},
		{KMPerHour, 1.60934},
		{MPerHour, 1609.34},
		{YdPerHour, 1760},
		{FtPerHour, 5280},
		{MPM, 0.0166666667},
		{KMPerMinute, 0.0268223334},
		{MPerMinute, 26.8223333333},
		{YdPerMinute, 29.3333333333},
		{FtPerMinute, 88},
		{MPS, 0.0002777778},
		{KMPerSecond, 0.0004470389},
		{MPerSecond, 0.4470388889},
		{YdPerSecond, 0.4888888889},
		{FtPerSecond, 1.4666666667},
	}
	for _, tc := range cases {
		t.Run(string(tc.unit), func(t *testing.T) {
			got, err := FromMPH(1, tc.unit)
			if err != nil {
				t.Fatalf("FromMPH: %v", err)
			}
			if !isClose(got, tc.want, 1e-5, 1e-8) {
				t.Fatalf("FromMPH(1, %s) = %v, want %v", tc.unit, got, tc.want)
			}
		})
	}
}

func TestToMiles(t *testing.T) {
	cases := map[DistanceUnit]float64{
		Miles:      1,
		Kilometers: 0.621371,
		Meters:     0.000621371,
		Yards:      0.000568182,
		Feet:       0.000189394,
	}
	for unit, want := range cases {
		got, err := ToMiles(1, unit)
		if err != nil {
			t.Fatalf("ToMiles(%s): %v", unit, err)
		}
		if !isClose(got, want, 1e-5, 1e-8) {
			t.Errorf("ToMiles(1, %s) = %v, want %v", unit, got, want)
		}
	}
}

func TestFromMiles(t *testing.T) {
	cases := map[DistanceUnit]float64{
		Miles:      1,
		Kilometers: 1.60934,
		Meters:     1609.34,
		Yards:      1760,
		Feet:       5280,
	}
	for unit, want := range cases {
		got, err := FromMiles(1, unit)
		if err != nil {
			t.Fatalf("FromMiles(%s): %v", unit, err)
		}
		if !isClose(got, want, 1e-5, 1e-8) {
			t.Errorf("FromMiles(1, %s) = %v, want %v", unit, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	samples := []float64{0.001, 1, 45, 27.5, 200, 123456.789}
	for _, u := range SpeedUnits() {
		for _, v := range samples {
			mph, err := ToMPH(v, u)
			if err != nil {
				t.Fatalf("ToMPH(%v, %s): %v", v, u, err)
			}
			back, err := FromMPH(mph, u)
			if err != nil {
				t.Fatalf("FromMPH(%v, %s): %v", mph, u, err)
			}
			if !isClose(back, v, 1e-5, 0) {
				t.Errorf("speed round trip %s: %v -> %v", u, v, back)
			}
		}
	}
	for _, u := range DistanceUnits() {
		for _, v := range samples {
			mi, err := ToMiles(v, u)
			if err != nil {
				t.Fatalf("ToMiles(%v, %s): %v", v, u, err)
			}
			back, err := FromMiles(mi, u)
			if err != nil {
				t.Fatalf("FromMiles(%v, %s): %v", mi, u, err)
			}
			if !isClose(back, v, 1e-5, 0) {
				t.Errorf("distance round trip %s: %v -> %v", u, v, back)
			}
		}
	}
}

func TestUnrecognizedUnit(t *testing.T) {
	if _, err := ToMPH(1, "lightyear/day"); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("ToMPH: expected ErrUnrecognizedUnit, got %v", err)
	}
	if _, err := FromMPH(1, "invalid_unit"); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("FromMPH: expected ErrUnrecognizedUnit, got %v", err)
	}
	if _, err := ToMiles(1, "furlongs"); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("ToMiles: expected ErrUnrecognizedUnit, got %v", err)
	}
	if _, err := FromMiles(1, ""); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("FromMiles: expected ErrUnrecognizedUnit, got %v", err)
	}
	if _, err := ConvertSpeed(1, MPH, "knots"); !errors.Is(err, ErrUnrecognizedUnit) {
		t.Fatalf("ConvertSpeed: expected ErrUnrecognizedUnit, got %v", err)
	}
}

// The narrower historic table (9 speed tags, miles/km/feet) must agree with
// the full one.
func TestNarrowTableSubset(t *testing.T) {
	speeds := []SpeedUnit{MPH, KMPerHour, FtPerHour, MPerMinute, KMPerMinute, FtPerMinute, MPerSecond, KMPerSecond, FtPerSecond}
	for _, u := range speeds {
		if _, err := ParseSpeedUnit(string(u)); err != nil {
			t.Errorf("speed %s not recognized: %v", u, err)
		}
	}
	km, err := ToMiles(1, "km")
	if err != nil {
		t.Fatalf("km alias: %v", err)
	}
	kilo, _ := ToMiles(1, Kilometers)
	if km != kilo {
		t.Fatalf("km alias = %v, kilometers = %v", km, kilo)
	}
}

func TestConvertSpeed(t *testing.T) {
	got, err := ConvertSpeed(88, FtPerMinute, MPerSecond)
	if err != nil {
		t.Fatalf("ConvertSpeed: %v", err)
	}
	if !isClose(got, 0.4470388889, 1e-5, 1e-8) {
		t.Fatalf("88 ft/min = %v m/s", got)
	}
	d, err := ConvertDistance(200, Feet, Yards)
	if err != nil {
		t.Fatalf("ConvertDistance: %v", err)
	}
	if !isClose(d, 200.0/3, 1e-9, 0) {
		t.Fatalf("200 ft = %v yd", d)
	}
}

func TestMPHToMPM(t *testing.T) {
	if got := MPHToMPM(30); got != 0.5 {
		t.Fatalf("MPHToMPM(30) = %v", got)
	}
}
