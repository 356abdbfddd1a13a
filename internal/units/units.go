// Speed and distance conversion through the canonical units (mph, miles).
package units

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedUnit is returned for any unit tag outside the conversion table.
var ErrUnrecognizedUnit = errors.New("unrecognized unit")

// SpeedUnit tags a speed magnitude.
type SpeedUnit string

// DistanceUnit tags a distance magnitude.
type DistanceUnit string

// Speed units.
const (
	MPH         SpeedUnit = "mph"
	KMPerHour   SpeedUnit = "km/h"
	MPerHour    SpeedUnit = "m/h"
	YdPerHour   SpeedUnit = "yd/h"
	FtPerHour   SpeedUnit = "ft/h"
	MPM         SpeedUnit = "mpm"
	KMPerMinute SpeedUnit = "km/min"
	MPerMinute  SpeedUnit = "m/min"
	YdPerMinute SpeedUnit = "yd/min"
	FtPerMinute SpeedUnit = "ft/min"
	MPS         SpeedUnit = "mps"
	KMPerSecond SpeedUnit = "km/s"
	MPerSecond  SpeedUnit = "m/s"
	YdPerSecond SpeedUnit = "yd/s"
	FtPerSecond SpeedUnit = "ft/s"
)

// Distance units.
const (
	Miles      DistanceUnit = "miles"
	Kilometers DistanceUnit = "kilometers"
	Meters     DistanceUnit = "meters"
	Yards      DistanceUnit = "yards"
	Feet       DistanceUnit = "feet"
)

const (
	kmPerMile   = 1.60934
	mPerMile    = 1609.34
	ydPerMile   = 1760.0
	ftPerMile   = 5280.0
	minPerHour  = 60.0
	secPerHour  = 3600.0
	kmAliasName = "km"
)

// mphPer holds how many miles per hour one unit of each speed tag is.
var mphPer = map[SpeedUnit]float64{
	MPH:         1,
	KMPerHour:   1 / kmPerMile,
	MPerHour:    1 / mPerMile,
	YdPerHour:   1 / ydPerMile,
	FtPerHour:   1 / ftPerMile,
	MPM:         minPerHour,
	KMPerMinute: minPerHour / kmPerMile,
	MPerMinute:  minPerHour / mPerMile,
	YdPerMinute: minPerHour / ydPerMile,
	FtPerMinute: minPerHour / ftPerMile,
	MPS:         secPerHour,
	KMPerSecond: secPerHour / kmPerMile,
	MPerSecond:  secPerHour / mPerMile,
	YdPerSecond: secPerHour / ydPerMile,
	FtPerSecond: secPerHour / ftPerMile,
}

// unitsPerMile holds how many of each distance unit make one mile.
var unitsPerMile = map[DistanceUnit]float64{
	Miles:      1,
	Kilometers: kmPerMile,
	Meters:     mPerMile,
	Yards:      ydPerMile,
	Feet:       ftPerMile,
}

var speedOrder = []SpeedUnit{
	MPH, KMPerHour, MPerHour, YdPerHour, FtPerHour,
	MPM, KMPerMinute, MPerMinute, YdPerMinute, FtPerMinute,
	MPS, KMPerSecond, MPerSecond, YdPerSecond, FtPerSecond,
}

var distanceOrder = []DistanceUnit{Miles, Kilometers, Meters, Yards, Feet}

// SpeedUnits returns all speed tags in display order.
func SpeedUnits() []SpeedUnit {
	out := make([]SpeedUnit, len(speedOrder))
	copy(out, speedOrder)
	return out
}

// DistanceUnits returns all distance tags in display order.
func DistanceUnits() []DistanceUnit {
	out := make([]DistanceUnit, len(distanceOrder))
	copy(out, distanceOrder)
	return out
}

// ParseSpeedUnit validates a speed tag.
func ParseSpeedUnit(s string) (SpeedUnit, error) {
	u := SpeedUnit(s)
	if _, ok := mphPer[u]; !ok {
		return "", fmt.Errorf("%w: speed %q", ErrUnrecognizedUnit, s)
	}
	return u, nil
}

// ParseDistanceUnit validates a distance tag. "km" is accepted for kilometers.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	if s == kmAliasName {
		return Kilometers, nil
	}
	u := DistanceUnit(s)
	if _, ok := unitsPerMile[u]; !ok {
		return "", fmt.Errorf("%w: distance %q", ErrUnrecognizedUnit, s)
	}
	return u, nil
}

func speedFactor(unit SpeedUnit) (float64, error) {
	u, err := ParseSpeedUnit(string(unit))
	if err != nil {
		return 0, err
	}
	return mphPer[u], nil
}

func distanceFactor(unit DistanceUnit) (float64, error) {
	u, err := ParseDistanceUnit(string(unit))
	if err != nil {
		return 0, err
	}
	return unitsPerMile[u], nil
}

// ToMPH converts a speed in unit to miles per hour.
func ToMPH(value float64, unit SpeedUnit) (float64, error) {
	f, err := speedFactor(unit)
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// FromMPH converts a speed in miles per hour to unit.
func FromMPH(value float64, unit SpeedUnit) (float64, error) {
	f, err := speedFactor(unit)
	if err != nil {
		return 0, err
	}
	return value / f, nil
}

// ToMiles converts a distance in unit to miles.
func ToMiles(value float64, unit DistanceUnit) (float64, error) {
	f, err := distanceFactor(unit)
	if err != nil {
		return 0, err
	}
	return value / f, nil
}

// FromMiles converts a distance in miles to unit.
func FromMiles(value float64, unit DistanceUnit) (float64, error) {
	f, err := distanceFactor(unit)
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// ConvertSpeed converts between two speed units via mph.
func ConvertSpeed(value float64, from, to SpeedUnit) (float64, error) {
	mph, err := ToMPH(value, from)
	if err != nil {
		return 0, err
	}
	return FromMPH(mph, to)
}

// ConvertDistance converts between two distance units via miles.
func ConvertDistance(value float64, from, to DistanceUnit) (float64, error) {
	mi, err := ToMiles(value, from)
	if err != nil {
		return 0, err
	}
	return FromMiles(mi, to)
}

// MPHToMPM returns the speed in miles per minute.
func MPHToMPM(mph float64) float64 {
	return mph / minPerHour
}
