package scenario

import (
	"intercept-calc/internal/config"
	"intercept-calc/internal/telemetry"
)

// BuiltIn returns the stock word problems built from cfg.
func BuiltIn(cfg *config.Config) map[string]Scenario {
	quick := cfg.Intercept
	quick.ReactionTimeMin = 1
	return map[string]Scenario{
		"car-collision": {
			Name:        "Car collision",
			Description: "Car A is traveling 45 mph. Car B is traveling 27 mph in the same lane, 200 feet in front of car A.",
			Questions:   []string{"How long until the cars collide?"},
			Problem:     telemetry.ProblemCollision,
			Collision:   ptr(cfg.Collision),
		},
		"drone-intercept": {
			Name:        "Drone intercept",
			Description: "Radar intercept capability is 2 miles. Their drone and ours both travel at 30 mph. It takes us 5 minutes to react and get our drone in the air.",
			Questions: []string{
				"How far away do we intercept the drone?",
				"What can we do to intercept the drone?",
			},
			Problem:   telemetry.ProblemIntercept,
			Intercept: ptr(cfg.Intercept),
		},
		"quick-reaction": {
			Name:        "Quick reaction",
			Description: "The drone intercept with the reaction time cut to 1 minute.",
			Questions:   []string{"How far away do we intercept the drone?"},
			Problem:     telemetry.ProblemIntercept,
			Intercept:   ptr(quick),
		},
	}
}

func ptr[T any](v T) *T { return &v }
