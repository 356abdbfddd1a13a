package problem

import (
	"errors"
	"math"
	"strings"
	"testing"

	"intercept-calc/internal/config"
	"intercept-calc/internal/kinematics"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

func TestCollisionDefaults(t *testing.T) {
	p := NewCollisionProblem(config.Default().Collision)
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	want := "The cars will collide in 0 minutes and 7.576 seconds."
	if res.Text() != want {
		t.Fatalf("got %q, want %q", res.Text(), want)
	}
	if !res.Outcome || res.Minutes <= 0.126 || res.Minutes >= 0.127 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if p.BuildResult().Text() != want {
		t.Fatalf("BuildResult should return the last result")
	}
}

func TestCollisionNever(t *testing.T) {
	for _, in := range []CollisionInputs{
		{SpeedA: 27, SpeedB: 45, SpeedUnit: "mph", InitialGap: 200, DistanceUnit: "feet"},
		{SpeedA: 30, SpeedB: 30, SpeedUnit: "mph", InitialGap: 0, DistanceUnit: "feet"},
	} {
		p := &CollisionProblem{Inputs: in}
		res, err := p.Recompute()
		if err != nil {
			t.Fatalf("Recompute: %v", err)
		}
		if res.Outcome || res.Text() != "The cars will never collide." {
			t.Fatalf("%+v: got %+v", in, res)
		}
	}
}

func TestCollisionMinutes(t *testing.T) {
	// 1 mile at a 32 mph closing speed
	p := &CollisionProblem{Inputs: CollisionInputs{SpeedA: 64, SpeedB: 32, SpeedUnit: "mph", InitialGap: 1, DistanceUnit: "miles"}}
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if res.Text() != "The cars will collide in 1 minutes and 52.500 seconds." {
		t.Fatalf("got %q", res.Text())
	}
	if res.Miles != 2 {
		t.Fatalf("collision point = %v miles", res.Miles)
	}
}

func TestCollisionValidation(t *testing.T) {
	cases := map[string]CollisionInputs{
		"Car A speed must be non-negative.":      {SpeedA: -1, SpeedUnit: "mph", DistanceUnit: "feet"},
		"Car B speed must be non-negative.":      {SpeedB: -1, SpeedUnit: "mph", DistanceUnit: "feet"},
		"Initial distance must be non-negative.": {InitialGap: -1, SpeedUnit: "mph", DistanceUnit: "feet"},
	}
	for msg, in := range cases {
		p := &CollisionProblem{Inputs: in}
		_, err := p.Recompute()
		if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), msg) {
			t.Errorf("expected %q, got %v", msg, err)
		}
		if _, err := p.Model(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Model: expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestCollisionUnknownUnit(t *testing.T) {
	p := &CollisionProblem{Inputs: CollisionInputs{SpeedA: 1, SpeedUnit: "lightyear/day", DistanceUnit: "feet"}}
	if _, err := p.Recompute(); !errors.Is(err, units.ErrUnrecognizedUnit) {
		t.Fatalf("expected ErrUnrecognizedUnit, got %v", err)
	}
}

func TestCollisionResetDefaults(t *testing.T) {
	p := NewCollisionProblem(config.Default().Collision)
	p.Inputs.SpeedA = 10
	res, err := p.ResetDefaults()
	if err != nil {
		t.Fatalf("ResetDefaults: %v", err)
	}
	if p.Inputs.SpeedA != 45 || !res.Outcome {
		t.Fatalf("defaults not restored: %+v %+v", p.Inputs, res)
	}
}

func TestInterceptDefaults(t *testing.T) {
	p := NewInterceptProblem(config.Default().Intercept)
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	want := []string{
		"We can't intercept the drone",
		"Drone speed (mph): 30.0000",
		"Bad drone distance during delay (miles): 2.5000",
		"Suggestions:",
		"Decrease drone speed to less than 24.00 mph",
		"Decrease reaction time to less than 4.00 minutes",
		"Increase radar range to more than 0.25 miles",
	}
	if res.Outcome || strings.Join(want, "\n") != res.Text() {
		t.Fatalf("got:\n%s\nwant:\n%s", res.Text(), strings.Join(want, "\n"))
	}
}

func TestInterceptPossible(t *testing.T) {
	p := NewInterceptProblem(config.Default().Intercept)
	p.Inputs.ReactionTimeMin = 1
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !res.Outcome || res.Lines[0] != "We intercept the drone." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Lines[1] != "Interception distance: 0.75 miles away" || res.Lines[2] != "Interception time: 2.50 minutes" {
		t.Fatalf("unexpected lines: %q", res.Lines)
	}
	if strings.Contains(res.Text(), "Suggestions:") {
		t.Fatalf("no suggestions expected when possible")
	}
}

func TestInterceptDisplayUnits(t *testing.T) {
	p := &InterceptProblem{Inputs: InterceptInputs{DroneSpeed: 30, SpeedUnit: "mph", RadarRange: 10560, DistanceUnit: "feet", ReactionTimeMin: 5}}
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if !strings.Contains(res.Text(), "Bad drone distance during delay (feet): 13200.0000") {
		t.Fatalf("delay not in feet: %s", res.Text())
	}
	if !strings.Contains(res.Text(), "Increase radar range to more than 1320.00 feet") {
		t.Fatalf("range suggestion not in feet: %s", res.Text())
	}
}

func TestInterceptValidation(t *testing.T) {
	p := &InterceptProblem{Inputs: InterceptInputs{DroneSpeed: 30, SpeedUnit: "mph", RadarRange: -2, DistanceUnit: "miles", ReactionTimeMin: 5}}
	_, err := p.Recompute()
	if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), "Radar range must be non-negative.") {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Inputs.RadarRange = 2
	p.Inputs.ReactionTimeMin = 0
	if _, err := p.Recompute(); !errors.Is(err, kinematics.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestPresenters(t *testing.T) {
	cfg := config.Default()
	for _, p := range []Presenter{NewCollisionProblem(cfg.Collision), NewInterceptProblem(cfg.Intercept)} {
		if n := len(p.BuildInputs()); n != 5 {
			t.Errorf("%s: %d inputs", p.Problem(), n)
		}
		m, err := p.Model()
		if err != nil {
			t.Fatalf("%s: Model: %v", p.Problem(), err)
		}
		if m.Problem() != p.Problem() {
			t.Errorf("model problem %s != %s", m.Problem(), p.Problem())
		}
	}
	if _, ok := mustModel(t, NewInterceptProblem(cfg.Intercept)).(*sim.InterceptModel); !ok {
		t.Fatalf("expected intercept model")
	}
}

func mustModel(t *testing.T, p Presenter) sim.Model {
	t.Helper()
	m, err := p.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	return m
}

func TestResultRow(t *testing.T) {
	gen := telemetry.NewGenerator(telemetry.ProblemCollision)
	res := Result{Problem: telemetry.ProblemCollision, Outcome: true, Minutes: 1, Lines: []string{"a", "b"}}
	row := res.Row(gen)
	if row.Summary != "a\nb" || row.RunID != gen.RunID || !row.Outcome {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestNonFiniteInputs(t *testing.T) {
	cases := map[string]Presenter{
		"Car A speed is too large.": &CollisionProblem{Inputs: CollisionInputs{
			SpeedA: 1e308, SpeedUnit: "mps", InitialGap: 1, DistanceUnit: "miles"}},
		"Initial distance is too large.": &CollisionProblem{Inputs: CollisionInputs{
			SpeedA: 2, SpeedB: 1, SpeedUnit: "mph", InitialGap: math.Inf(1), DistanceUnit: "miles"}},
		"Result time is too large.": &CollisionProblem{Inputs: CollisionInputs{
			SpeedA: 1, SpeedUnit: "mph", InitialGap: 1e308, DistanceUnit: "miles"}},
		"Drone speed is too large.": &InterceptProblem{Inputs: InterceptInputs{
			DroneSpeed: 1e308, SpeedUnit: "mps", RadarRange: 2, DistanceUnit: "miles", ReactionTimeMin: 5}},
		"Reaction time is too large.": &InterceptProblem{Inputs: InterceptInputs{
			DroneSpeed: 30, SpeedUnit: "mph", RadarRange: 2, DistanceUnit: "miles", ReactionTimeMin: math.Inf(1)}},
	}
	for msg, p := range cases {
		_, err := p.Recompute()
		if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), msg) {
			t.Errorf("expected %q, got %v", msg, err)
		}
	}
}

func TestInterceptScenarioConversionError(t *testing.T) {
	in := InterceptInputs{DroneSpeed: 1e308, SpeedUnit: "mps", RadarRange: 2, DistanceUnit: "miles", ReactionTimeMin: 5}
	if _, err := in.Scenario(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
