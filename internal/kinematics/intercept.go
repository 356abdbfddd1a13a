package kinematics

import (
	"fmt"
	"math"

	"intercept-calc/internal/units"
)

// SuggestionKind names the single parameter a suggestion adjusts.
type SuggestionKind string

const (
	// MaxDroneSpeed is the adversary speed (mph) below which interception works.
	MaxDroneSpeed SuggestionKind = "max_drone_speed"
	// MaxReactionTime is the reaction time (minutes) below which interception works.
	MaxReactionTime SuggestionKind = "max_reaction_time"
	// MinRadarRange is the radar range (miles) suggested for interception.
	MinRadarRange SuggestionKind = "min_radar_range"
)

// Suggestion is one single-variable adjustment with the other two inputs held fixed.
type Suggestion struct {
	Kind  SuggestionKind `json:"kind"`
	Value float64        `json:"value"`
}

// InterceptScenario describes an adversary drone entering radar range while
// the defender spends ReactionTime minutes launching a drone of equal speed.
type InterceptScenario struct {
	DroneSpeed   float64 `json:"drone_speed_mph"`
	RadarRange   float64 `json:"radar_range_miles"`
	ReactionTime float64 `json:"reaction_time_min"`
}

// InterceptResult is the outcome of ComputeIntercept.
type InterceptResult struct {
	Possible          bool         `json:"possible"`
	SpeedPerMinute    float64      `json:"speed_per_minute"`
	DelayDistance     float64      `json:"delay_distance_miles"`
	InterceptDistance float64      `json:"intercept_distance_miles"`
	InterceptTime     float64      `json:"intercept_time_min,omitempty"`
	Suggestions       []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion returns the suggestion of the given kind, if present.
func (r InterceptResult) Suggestion(kind SuggestionKind) (float64, bool) {
	for _, s := range r.Suggestions {
		if s.Kind == kind {
			return s.Value, true
		}
	}
	return 0, false
}

// ComputeIntercept decides whether the adversary can be met inside the radar
// boundary. Both drones close symmetrically after launch, so the meeting point
// sits halfway across the range left after the reaction delay.
func ComputeIntercept(droneSpeed, radarRange, reactionTime float64) (InterceptResult, error) {
	switch {
	case !(droneSpeed > 0) || math.IsInf(droneSpeed, 0):
		return InterceptResult{}, fmt.Errorf("%w: drone speed must be positive and finite, got %v", ErrInvalidParameter, droneSpeed)
	case !(radarRange > 0) || math.IsInf(radarRange, 0):
		return InterceptResult{}, fmt.Errorf("%w: radar range must be positive and finite, got %v", ErrInvalidParameter, radarRange)
	case !(reactionTime > 0) || math.IsInf(reactionTime, 0):
		return InterceptResult{}, fmt.Errorf("%w: reaction time must be positive and finite, got %v", ErrInvalidParameter, reactionTime)
	}

	spm := units.MPHToMPM(droneSpeed)
	delay := spm * reactionTime
	res := InterceptResult{
		Possible:          delay < radarRange,
		SpeedPerMinute:    spm,
		DelayDistance:     delay,
		InterceptDistance: (radarRange - delay) / 2,
	}
	if res.Possible {
		res.InterceptTime = res.InterceptDistance/spm + reactionTime
		return res, res.checkFinite()
	}

	// The radar range suggestion reuses the unreachable intercept distance
	// as a magnitude instead of re-solving for the range.
	res.Suggestions = []Suggestion{
		{Kind: MaxDroneSpeed, Value: radarRange / reactionTime * 60},
		{Kind: MaxReactionTime, Value: radarRange / spm},
		{Kind: MinRadarRange, Value: math.Abs(res.InterceptDistance)},
	}
	return res, res.checkFinite()
}

// checkFinite rejects results whose inputs overflowed float64 on the way through.
func (r InterceptResult) checkFinite() error {
	vals := []float64{r.SpeedPerMinute, r.DelayDistance, r.InterceptDistance, r.InterceptTime}
	for _, s := range r.Suggestions {
		vals = append(vals, s.Value)
	}
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Errorf("%w: inputs overflow the calculation", ErrInvalidParameter)
		}
	}
	return nil
}

// Compute is ComputeIntercept on the scenario fields.
func (s InterceptScenario) Compute() (InterceptResult, error) {
	return ComputeIntercept(s.DroneSpeed, s.RadarRange, s.ReactionTime)
}
