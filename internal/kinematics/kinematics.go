// Closed-form collision and intercept calculations.
//
// All speeds are in miles per hour and all distances in miles. Callers convert
// from display units with the units package before calling in.
package kinematics

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidParameter is returned when an input would be used as a zero divisor.
var ErrInvalidParameter = errors.New("invalid parameter")

// CollisionScenario describes car A following car B in the same lane.
type CollisionScenario struct {
	SpeedA float64 `json:"speed_a_mph"`
	SpeedB float64 `json:"speed_b_mph"`
	Gap    float64 `json:"gap_miles"`
}

// CollisionResult is the outcome of ComputeCollision.
type CollisionResult struct {
	Collides bool `json:"collides"`
	// Hours until contact; zero when Collides is false.
	Hours float64 `json:"hours,omitempty"`
}

// TimeToCollision returns Hours as a time.Duration, saturating at the largest
// representable duration.
func (r CollisionResult) TimeToCollision() time.Duration {
	if r.Hours >= maxDurationHours {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(r.Hours * float64(time.Hour))
}

var maxDurationHours = float64(math.MaxInt64) / float64(time.Hour)

// ClosingSpeed returns how fast A gains on B.
func (s CollisionScenario) ClosingSpeed() float64 {
	return s.SpeedA - s.SpeedB
}

// ComputeCollision returns when the trailing car A reaches car B. Inputs must
// already be validated as non-negative.
func ComputeCollision(speedA, speedB, gap float64) CollisionResult {
	closing := speedA - speedB
	if closing <= 0 {
		return CollisionResult{Collides: false}
	}
	return CollisionResult{Collides: true, Hours: gap / closing}
}

// Compute is ComputeCollision on the scenario fields.
func (s CollisionScenario) Compute() CollisionResult {
	return ComputeCollision(s.SpeedA, s.SpeedB, s.Gap)
}
