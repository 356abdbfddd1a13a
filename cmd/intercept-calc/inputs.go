package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"intercept-calc/internal/config"
	"intercept-calc/internal/problem"
	"intercept-calc/internal/scenario"
	"intercept-calc/internal/telemetry"
)

// inputFlags holds the problem inputs that can be set on the command line.
// Only flags the user actually set override the loaded inputs.
type inputFlags struct {
	scenarioName string
	scenarioFile string

	speedA, speedB, gap     float64
	droneSpeed, radarRange  float64
	reactionTime            float64
	speedUnit, distanceUnit string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.scenarioName, "scenario", "", "Built-in scenario name (see 'units --scenarios')")
	fs.StringVar(&f.scenarioFile, "file", "", "Path to a scenario YAML file")
	fs.Float64Var(&f.speedA, "speed-a", 0, "Car A speed")
	fs.Float64Var(&f.speedB, "speed-b", 0, "Car B speed")
	fs.Float64Var(&f.gap, "gap", 0, "Initial distance between the cars")
	fs.Float64Var(&f.droneSpeed, "drone-speed", 0, "Drone speed")
	fs.Float64Var(&f.radarRange, "radar-range", 0, "Radar range")
	fs.Float64Var(&f.reactionTime, "reaction-time", 0, "Reaction time in minutes")
	fs.StringVar(&f.speedUnit, "speed-unit", "", "Speed unit")
	fs.StringVar(&f.distanceUnit, "distance-unit", "", "Distance unit")
}

// presenter resolves the inputs for kind: a scenario file or built-in
// scenario when given, the configured defaults otherwise, then the flags.
// An empty kind takes the problem from the scenario.
func (f *inputFlags) presenter(cmd *cobra.Command, cfg *config.Config, kind telemetry.Problem) (problem.Presenter, error) {
	p, err := basePresenter(cfg, kind, f.scenarioName, f.scenarioFile)
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	switch p := p.(type) {
	case *problem.CollisionProblem:
		if changed("speed-a") {
			p.Inputs.SpeedA = f.speedA
		}
		if changed("speed-b") {
			p.Inputs.SpeedB = f.speedB
		}
		if changed("gap") {
			p.Inputs.InitialGap = f.gap
		}
		if changed("speed-unit") {
			p.Inputs.SpeedUnit = f.speedUnit
		}
		if changed("distance-unit") {
			p.Inputs.DistanceUnit = f.distanceUnit
		}
	case *problem.InterceptProblem:
		if changed("drone-speed") {
			p.Inputs.DroneSpeed = f.droneSpeed
		}
		if changed("radar-range") {
			p.Inputs.RadarRange = f.radarRange
		}
		if changed("reaction-time") {
			p.Inputs.ReactionTimeMin = f.reactionTime
		}
		if changed("speed-unit") {
			p.Inputs.SpeedUnit = f.speedUnit
		}
		if changed("distance-unit") {
			p.Inputs.DistanceUnit = f.distanceUnit
		}
	}
	return p, nil
}

func basePresenter(cfg *config.Config, kind telemetry.Problem, name, file string) (problem.Presenter, error) {
	var sc *scenario.Scenario
	var err error
	switch {
	case file != "":
		sc, err = scenario.Load(file, cfg)
	case name != "":
		sc, err = scenario.Lookup(name, cfg)
	}
	if err != nil {
		return nil, err
	}
	if sc != nil {
		if kind != "" && sc.Problem != kind {
			return nil, fmt.Errorf("%w: %s is a %s problem, not %s", scenario.ErrUnknownScenario, sc.Name, sc.Problem, kind)
		}
		return sc.Presenter()
	}
	switch kind {
	case telemetry.ProblemCollision:
		return problem.NewCollisionProblem(cfg.Collision), nil
	case telemetry.ProblemIntercept:
		return problem.NewInterceptProblem(cfg.Intercept), nil
	default:
		return nil, fmt.Errorf("%w: problem %q (want collision or intercept)", scenario.ErrUnknownScenario, kind)
	}
}
