package scenario

import (
	"errors"
	"testing"

	"intercept-calc/internal/config"
	"intercept-calc/internal/telemetry"
)

func TestLoadScenario(t *testing.T) {
	sc, err := Load("testdata/slow-drone.yaml", config.Default())
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if sc.Name != "Slow drone" {
		t.Fatalf("unexpected name %s", sc.Name)
	}
	if sc.Problem != telemetry.ProblemIntercept || sc.Collision != nil {
		t.Fatalf("unexpected problem blocks: %+v", sc)
	}
	if sc.Intercept.DroneSpeed != 20 || sc.Intercept.RadarRange != 5 {
		t.Fatalf("unexpected inputs %+v", sc.Intercept)
	}
	// left out of the file
	if sc.Intercept.ReactionTimeMin != 5 || sc.Intercept.SpeedUnit != "mph" {
		t.Fatalf("defaults not applied: %+v", sc.Intercept)
	}

	p, err := sc.Presenter()
	if err != nil {
		t.Fatalf("Presenter: %v", err)
	}
	res, err := p.Recompute()
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	// delay 20/60*5 = 1.667 mi < 5 mi
	if !res.Outcome {
		t.Fatalf("expected intercept: %s", res.Text())
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := Load("testdata/bad-problem.yaml", config.Default()); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if _, err := Load("testdata/missing.yaml", config.Default()); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestBuiltInScenarios(t *testing.T) {
	cfg := config.Default()
	want := map[string]bool{
		"car-collision":   true,
		"drone-intercept": false,
		"quick-reaction":  true,
	}
	names := Names(cfg)
	if len(names) != len(want) {
		t.Fatalf("unexpected names %v", names)
	}
	for name, outcome := range want {
		sc, err := Lookup(name, cfg)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if sc.Description == "" || len(sc.Questions) == 0 {
			t.Fatalf("scenario %s missing wording", name)
		}
		p, err := sc.Presenter()
		if err != nil {
			t.Fatalf("%s: Presenter: %v", name, err)
		}
		res, err := p.Recompute()
		if err != nil {
			t.Fatalf("%s: Recompute: %v", name, err)
		}
		if res.Outcome != outcome {
			t.Fatalf("%s: outcome %v, want %v: %s", name, res.Outcome, outcome, res.Text())
		}
	}
	if _, err := Lookup("trains", cfg); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestBuiltInDoesNotAliasConfig(t *testing.T) {
	cfg := config.Default()
	sc, _ := Lookup("car-collision", cfg)
	sc.Collision.SpeedA = 1
	if cfg.Collision.SpeedA != 45 {
		t.Fatalf("scenario shares config storage")
	}
}
