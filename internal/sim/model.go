// Frame-stepped position models for both word problems
package sim

import (
	"fmt"
	"math"
	"time"

	"intercept-calc/internal/kinematics"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

// Frame is the state of a scenario at one simulated instant. Positions are in
// miles along the shared line of travel; A is the pursuer and B the pursued.
type Frame struct {
	SimulatedTime time.Duration `json:"simulated_time"`
	PositionA     float64       `json:"position_a"`
	PositionB     float64       `json:"position_b"`
	Contact       bool          `json:"contact"`
	Intercepted   bool          `json:"intercepted,omitempty"`
}

// Model computes frames from elapsed simulated time. Implementations hold only
// their scenario and are safe to call repeatedly in any order.
type Model interface {
	Problem() telemetry.Problem
	// Start is the first simulated instant worth showing.
	Start() time.Duration
	Frame(t time.Duration) Frame
}

// CollisionModel moves car A from 0 and car B from the initial gap.
type CollisionModel struct {
	Scenario kinematics.CollisionScenario
}

// NewCollisionModel returns a model for validated non-negative inputs.
func NewCollisionModel(s kinematics.CollisionScenario) (*CollisionModel, error) {
	if s.SpeedA < 0 || s.SpeedB < 0 || s.Gap < 0 {
		return nil, fmt.Errorf("%w: negative collision input %+v", kinematics.ErrInvalidParameter, s)
	}
	return &CollisionModel{Scenario: s}, nil
}

func (m *CollisionModel) Problem() telemetry.Problem { return telemetry.ProblemCollision }

func (m *CollisionModel) Start() time.Duration { return 0 }

// Frame places both cars at t. Contact once A has reached B.
func (m *CollisionModel) Frame(t time.Duration) Frame {
	h := t.Hours()
	a := m.Scenario.SpeedA * h
	b := m.Scenario.Gap + m.Scenario.SpeedB*h
	return Frame{SimulatedTime: t, PositionA: a, PositionB: b, Contact: a >= b}
}

// InterceptModel measures time from the moment the adversary crosses the radar
// boundary. The defender launches ReactionTime minutes later at the same speed
// and flies out from the base at 0.
type InterceptModel struct {
	Scenario kinematics.InterceptScenario
}

// NewInterceptModel rejects parameters that would keep the model from ever
// reaching contact.
func NewInterceptModel(s kinematics.InterceptScenario) (*InterceptModel, error) {
	if !(s.DroneSpeed > 0) || !(s.RadarRange > 0) || s.ReactionTime < 0 {
		return nil, fmt.Errorf("%w: intercept input %+v", kinematics.ErrInvalidParameter, s)
	}
	return &InterceptModel{Scenario: s}, nil
}

func (m *InterceptModel) Problem() telemetry.Problem { return telemetry.ProblemIntercept }

// Start begins one reaction time before detection so the approach is visible.
func (m *InterceptModel) Start() time.Duration {
	return -time.Duration(m.Scenario.ReactionTime * float64(time.Minute))
}

// Frame places the defender (A) and the adversary (B) at t. The defender is
// pinned at the base until launch; contact with the defender still on the
// ground means the adversary got through.
func (m *InterceptModel) Frame(t time.Duration) Frame {
	mins := t.Minutes()
	spm := units.MPHToMPM(m.Scenario.DroneSpeed)
	adversary := m.Scenario.RadarRange - spm*mins
	defender := math.Max(0, spm*(mins-m.Scenario.ReactionTime))
	contact := defender >= adversary
	return Frame{
		SimulatedTime: t,
		PositionA:     defender,
		PositionB:     adversary,
		Contact:       contact,
		Intercepted:   contact && defender > 0,
	}
}
