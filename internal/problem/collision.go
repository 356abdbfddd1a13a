package problem

import (
	"fmt"
	"math"

	"intercept-calc/internal/config"
	"intercept-calc/internal/kinematics"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

// CollisionInputs are the car collision form values in display units.
type CollisionInputs struct {
	SpeedA       float64 `json:"speed_a"`
	SpeedB       float64 `json:"speed_b"`
	SpeedUnit    string  `json:"speed_unit"`
	InitialGap   float64 `json:"initial_gap"`
	DistanceUnit string  `json:"distance_unit"`
}

// CollisionInputsFromConfig copies the configured defaults.
func CollisionInputsFromConfig(c config.Collision) CollisionInputs {
	return CollisionInputs{
		SpeedA:       c.SpeedA,
		SpeedB:       c.SpeedB,
		SpeedUnit:    c.SpeedUnit,
		InitialGap:   c.InitialGap,
		DistanceUnit: c.DistanceUnit,
	}
}

// Validate checks the inputs the way the form does before calculating.
func (in CollisionInputs) Validate() error {
	if err := nonNegative("Car A speed", in.SpeedA); err != nil {
		return err
	}
	if err := nonNegative("Car B speed", in.SpeedB); err != nil {
		return err
	}
	return nonNegative("Initial distance", in.InitialGap)
}

// Scenario converts the inputs to mph and miles.
func (in CollisionInputs) Scenario() (kinematics.CollisionScenario, error) {
	su, err := units.ParseSpeedUnit(in.SpeedUnit)
	if err != nil {
		return kinematics.CollisionScenario{}, err
	}
	du, err := units.ParseDistanceUnit(in.DistanceUnit)
	if err != nil {
		return kinematics.CollisionScenario{}, err
	}
	a, err := toMPH("Car A speed", in.SpeedA, su)
	if err != nil {
		return kinematics.CollisionScenario{}, err
	}
	b, err := toMPH("Car B speed", in.SpeedB, su)
	if err != nil {
		return kinematics.CollisionScenario{}, err
	}
	gap, err := toMiles("Initial distance", in.InitialGap, du)
	if err != nil {
		return kinematics.CollisionScenario{}, err
	}
	return kinematics.CollisionScenario{SpeedA: a, SpeedB: b, Gap: gap}, nil
}

// CollisionProblem is car A closing on car B in the same lane.
type CollisionProblem struct {
	Inputs   CollisionInputs
	defaults CollisionInputs
	last     Result
}

// NewCollisionProblem starts from the configured defaults.
func NewCollisionProblem(defaults config.Collision) *CollisionProblem {
	in := CollisionInputsFromConfig(defaults)
	return &CollisionProblem{Inputs: in, defaults: in}
}

func (p *CollisionProblem) Problem() telemetry.Problem { return telemetry.ProblemCollision }

func (p *CollisionProblem) BuildInputs() []Field {
	return []Field{
		{Name: "speed_a", Label: "Car A speed:", Value: p.Inputs.SpeedA},
		{Name: "speed_b", Label: "Car B speed:", Value: p.Inputs.SpeedB},
		{Name: "speed_unit", Label: "Speed units:", Value: p.Inputs.SpeedUnit, Options: speedOptions()},
		{Name: "initial_gap", Label: "Initial distance:", Value: p.Inputs.InitialGap},
		{Name: "distance_unit", Label: "Distance units:", Value: p.Inputs.DistanceUnit, Options: distanceOptions()},
	}
}

// BuildResult returns the result of the last successful Recompute.
func (p *CollisionProblem) BuildResult() Result { return p.last }

func (p *CollisionProblem) ResetDefaults() (Result, error) {
	p.Inputs = p.defaults
	return p.Recompute()
}

func (p *CollisionProblem) Recompute() (Result, error) {
	if err := p.Inputs.Validate(); err != nil {
		return Result{}, err
	}
	s, err := p.Inputs.Scenario()
	if err != nil {
		return Result{}, err
	}
	res := RenderCollision(s, s.Compute())
	if err := res.checkFinite(); err != nil {
		return Result{}, err
	}
	p.last = res
	return res, nil
}

func (p *CollisionProblem) Model() (sim.Model, error) {
	if err := p.Inputs.Validate(); err != nil {
		return nil, err
	}
	s, err := p.Inputs.Scenario()
	if err != nil {
		return nil, err
	}
	return sim.NewCollisionModel(s)
}

// RenderCollision formats a collision result as "M minutes and S.sss seconds".
func RenderCollision(s kinematics.CollisionScenario, r kinematics.CollisionResult) Result {
	res := Result{Problem: telemetry.ProblemCollision, Outcome: r.Collides}
	if !r.Collides {
		res.Lines = []string{"The cars will never collide."}
		return res
	}
	ms := math.Round(r.Hours * 3600 * 1000)
	minutes := math.Floor(ms / 60000)
	seconds := (ms - minutes*60000) / 1000
	res.Minutes = r.Hours * 60
	res.Miles = s.SpeedA * r.Hours
	res.Lines = []string{fmt.Sprintf("The cars will collide in %d minutes and %.3f seconds.", int(minutes), seconds)}
	return res
}

func speedOptions() []string {
	us := units.SpeedUnits()
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = string(u)
	}
	return out
}

func distanceOptions() []string {
	us := units.DistanceUnits()
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = string(u)
	}
	return out
}
