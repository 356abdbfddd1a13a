package problem

import (
	"fmt"

	"intercept-calc/internal/config"
	"intercept-calc/internal/kinematics"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

// InterceptInputs are the drone intercept form values in display units.
// Reaction time is always in minutes.
type InterceptInputs struct {
	DroneSpeed      float64 `json:"drone_speed"`
	SpeedUnit       string  `json:"speed_unit"`
	RadarRange      float64 `json:"radar_range"`
	DistanceUnit    string  `json:"distance_unit"`
	ReactionTimeMin float64 `json:"reaction_time_min"`
}

// InterceptInputsFromConfig copies the configured defaults.
func InterceptInputsFromConfig(c config.Intercept) InterceptInputs {
	return InterceptInputs{
		DroneSpeed:      c.DroneSpeed,
		SpeedUnit:       c.SpeedUnit,
		RadarRange:      c.RadarRange,
		DistanceUnit:    c.DistanceUnit,
		ReactionTimeMin: c.ReactionTimeMin,
	}
}

func (in InterceptInputs) Validate() error {
	if err := nonNegative("Drone speed", in.DroneSpeed); err != nil {
		return err
	}
	if err := nonNegative("Radar range", in.RadarRange); err != nil {
		return err
	}
	return nonNegative("Reaction time", in.ReactionTimeMin)
}

func (in InterceptInputs) parseUnits() (units.SpeedUnit, units.DistanceUnit, error) {
	su, err := units.ParseSpeedUnit(in.SpeedUnit)
	if err != nil {
		return "", "", err
	}
	du, err := units.ParseDistanceUnit(in.DistanceUnit)
	if err != nil {
		return "", "", err
	}
	return su, du, nil
}

// Scenario converts the inputs to mph and miles.
func (in InterceptInputs) Scenario() (kinematics.InterceptScenario, error) {
	s, _, _, err := in.convert()
	return s, err
}

// convert returns the canonical scenario together with the parsed display units.
func (in InterceptInputs) convert() (kinematics.InterceptScenario, units.SpeedUnit, units.DistanceUnit, error) {
	su, du, err := in.parseUnits()
	if err != nil {
		return kinematics.InterceptScenario{}, "", "", err
	}
	speed, err := toMPH("Drone speed", in.DroneSpeed, su)
	if err != nil {
		return kinematics.InterceptScenario{}, "", "", err
	}
	rng, err := toMiles("Radar range", in.RadarRange, du)
	if err != nil {
		return kinematics.InterceptScenario{}, "", "", err
	}
	return kinematics.InterceptScenario{DroneSpeed: speed, RadarRange: rng, ReactionTime: in.ReactionTimeMin}, su, du, nil
}

// InterceptProblem is an adversary drone entering radar range while the
// defender reacts.
type InterceptProblem struct {
	Inputs   InterceptInputs
	defaults InterceptInputs
	last     Result
}

// NewInterceptProblem starts from the configured defaults.
func NewInterceptProblem(defaults config.Intercept) *InterceptProblem {
	in := InterceptInputsFromConfig(defaults)
	return &InterceptProblem{Inputs: in, defaults: in}
}

func (p *InterceptProblem) Problem() telemetry.Problem { return telemetry.ProblemIntercept }

func (p *InterceptProblem) BuildInputs() []Field {
	return []Field{
		{Name: "drone_speed", Label: "Drone speed:", Value: p.Inputs.DroneSpeed},
		{Name: "speed_unit", Label: "Speed units:", Value: p.Inputs.SpeedUnit, Options: speedOptions()},
		{Name: "radar_range", Label: "Radar range:", Value: p.Inputs.RadarRange},
		{Name: "distance_unit", Label: "Distance units:", Value: p.Inputs.DistanceUnit, Options: distanceOptions()},
		{Name: "reaction_time_min", Label: "Reaction time (min):", Value: p.Inputs.ReactionTimeMin},
	}
}

func (p *InterceptProblem) BuildResult() Result { return p.last }

func (p *InterceptProblem) ResetDefaults() (Result, error) {
	p.Inputs = p.defaults
	return p.Recompute()
}

func (p *InterceptProblem) Recompute() (Result, error) {
	if err := p.Inputs.Validate(); err != nil {
		return Result{}, err
	}
	s, su, du, err := p.Inputs.convert()
	if err != nil {
		return Result{}, err
	}
	r, err := s.Compute()
	if err != nil {
		return Result{}, err
	}
	res := RenderIntercept(s, r, su, du)
	if err := res.checkFinite(); err != nil {
		return Result{}, err
	}
	p.last = res
	return res, nil
}

func (p *InterceptProblem) Model() (sim.Model, error) {
	if err := p.Inputs.Validate(); err != nil {
		return nil, err
	}
	s, err := p.Inputs.Scenario()
	if err != nil {
		return nil, err
	}
	return sim.NewInterceptModel(s)
}

// RenderIntercept formats an intercept result. The delay distance and the
// radar range suggestion are shown in du, the drone speed suggestion in su.
func RenderIntercept(s kinematics.InterceptScenario, r kinematics.InterceptResult, su units.SpeedUnit, du units.DistanceUnit) Result {
	res := Result{Problem: telemetry.ProblemIntercept, Outcome: r.Possible}
	delay, _ := units.FromMiles(r.DelayDistance, du)
	if r.Possible {
		res.Minutes = r.InterceptTime
		res.Miles = r.InterceptDistance
		res.Lines = []string{
			"We intercept the drone.",
			fmt.Sprintf("Interception distance: %.2f miles away", r.InterceptDistance),
			fmt.Sprintf("Interception time: %.2f minutes", r.InterceptTime),
		}
	} else {
		res.Lines = []string{"We can't intercept the drone"}
	}
	res.Lines = append(res.Lines,
		fmt.Sprintf("Drone speed (mph): %.4f", s.DroneSpeed),
		fmt.Sprintf("Bad drone distance during delay (%s): %.4f", du, delay),
	)
	if r.Possible {
		return res
	}

	res.Lines = append(res.Lines, "Suggestions:")
	if v, ok := r.Suggestion(kinematics.MaxDroneSpeed); ok {
		speed, _ := units.FromMPH(v, su)
		res.Lines = append(res.Lines, fmt.Sprintf("Decrease drone speed to less than %.2f %s", speed, su))
	}
	if v, ok := r.Suggestion(kinematics.MaxReactionTime); ok {
		res.Lines = append(res.Lines, fmt.Sprintf("Decrease reaction time to less than %.2f minutes", v))
	}
	if v, ok := r.Suggestion(kinematics.MinRadarRange); ok {
		rng, _ := units.FromMiles(v, du)
		res.Lines = append(res.Lines, fmt.Sprintf("Increase radar range to more than %.2f %s", rng, du))
	}
	return res
}
