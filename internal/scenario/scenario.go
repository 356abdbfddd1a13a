package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"intercept-calc/internal/config"
	"intercept-calc/internal/problem"
	"intercept-calc/internal/telemetry"
)

// ErrUnknownScenario is returned when a name or problem kind is not known.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a named word problem with its inputs. Only the block matching
// Problem is set.
type Scenario struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Questions   []string          `yaml:"questions,omitempty" json:"questions,omitempty"`
	Problem     telemetry.Problem `yaml:"problem" json:"problem"`
	Collision   *config.Collision `yaml:"collision,omitempty" json:"collision,omitempty"`
	Intercept   *config.Intercept `yaml:"intercept,omitempty" json:"intercept,omitempty"`
}

// Load reads a YAML scenario definition from disk. Inputs the file leaves out
// are taken from defaults.
func Load(path string, defaults *config.Config) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s := Scenario{
		Collision: ptr(defaults.Collision),
		Intercept: ptr(defaults.Intercept),
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	switch s.Problem {
	case telemetry.ProblemCollision:
		s.Intercept = nil
	case telemetry.ProblemIntercept:
		s.Collision = nil
	default:
		return nil, fmt.Errorf("%w: problem %q in %s", ErrUnknownScenario, s.Problem, path)
	}
	return &s, nil
}

// Lookup returns a built-in scenario by name.
func Lookup(name string, cfg *config.Config) (*Scenario, error) {
	s, ok := BuiltIn(cfg)[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return &s, nil
}

// Names lists the built-in scenario names in order.
func Names(cfg *config.Config) []string {
	all := BuiltIn(cfg)
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Presenter returns a problem presenter loaded with the scenario inputs.
// ResetDefaults on it returns to these inputs.
func (s *Scenario) Presenter() (problem.Presenter, error) {
	switch {
	case s.Problem == telemetry.ProblemCollision && s.Collision != nil:
		return problem.NewCollisionProblem(*s.Collision), nil
	case s.Problem == telemetry.ProblemIntercept && s.Intercept != nil:
		return problem.NewInterceptProblem(*s.Intercept), nil
	default:
		return nil, fmt.Errorf("%w: %s has no %s inputs", ErrUnknownScenario, s.Name, s.Problem)
	}
}
