// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Collision holds the car collision form defaults in display units.
type Collision struct {
	SpeedA       float64 `yaml:"speed_a" json:"speed_a"`
	SpeedB       float64 `yaml:"speed_b" json:"speed_b"`
	SpeedUnit    string  `yaml:"speed_unit" json:"speed_unit"`
	InitialGap   float64 `yaml:"initial_gap" json:"initial_gap"`
	DistanceUnit string  `yaml:"distance_unit" json:"distance_unit"`
}

// Intercept holds the drone intercept form defaults in display units.
type Intercept struct {
	DroneSpeed      float64 `yaml:"drone_speed" json:"drone_speed"`
	SpeedUnit       string  `yaml:"speed_unit" json:"speed_unit"`
	RadarRange      float64 `yaml:"radar_range" json:"radar_range"`
	DistanceUnit    string  `yaml:"distance_unit" json:"distance_unit"`
	ReactionTimeMin float64 `yaml:"reaction_time_min" json:"reaction_time_min"`
}

// Simulation controls the frame-stepped traces.
type Simulation struct {
	CollisionStep time.Duration `yaml:"collision_step" json:"collision_step"`
	InterceptStep time.Duration `yaml:"intercept_step" json:"intercept_step"`
	SpeedFactor   float64       `yaml:"speed_factor" json:"speed_factor"`
	MaxSteps      int           `yaml:"max_steps" json:"max_steps"`
}

// API configures the HTTP calculator service.
type API struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Config is the root configuration.
type Config struct {
	Collision  Collision  `yaml:"collision" json:"collision"`
	Intercept  Intercept  `yaml:"intercept" json:"intercept"`
	Simulation Simulation `yaml:"simulation" json:"simulation"`
	API        API        `yaml:"api" json:"api"`
}

// Default returns the word-problem values: car A at 45 mph behind car B at
// 27 mph with a 200 ft gap, and a 30 mph drone entering a 2 mile radar range
// with a 5 minute reaction time.
func Default() *Config {
	return &Config{
		Collision: Collision{
			SpeedA:       45,
			SpeedB:       27,
			SpeedUnit:    "mph",
			InitialGap:   200,
			DistanceUnit: "feet",
		},
		Intercept: Intercept{
			DroneSpeed:      30,
			SpeedUnit:       "mph",
			RadarRange:      2,
			DistanceUnit:    "miles",
			ReactionTimeMin: 5,
		},
		Simulation: Simulation{
			CollisionStep: 300 * time.Millisecond,
			InterceptStep: 3 * time.Second,
			SpeedFactor:   1,
			MaxSteps:      100000,
		},
		API: API{Addr: ":8080"},
	}
}

// Load loads YAML config and validates it against a CUE schema. Keys absent
// from the file keep their Default values.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(cfg)

	slog.Debug("loaded configuration", "path", configPath, "config", fmt.Sprintf("%+v", *cfg))
	return cfg, nil
}

// LoadOrDefault loads configPath when it is set and exists, otherwise returns
// Default.
func LoadOrDefault(configPath, cueSchemaPath string) (*Config, error) {
	if configPath == "" {
		return applyEnv(Default()), nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("config file not found, using defaults", "path", configPath)
		return applyEnv(Default()), nil
	}
	return Load(configPath, cueSchemaPath)
}

func applyEnv(cfg *Config) *Config {
	if env := os.Getenv("API_ADDR"); env != "" {
		cfg.API.Addr = env
	}
	return cfg
}
