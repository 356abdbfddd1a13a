// Package problem turns form-style inputs in display units into the text
// results of the two word problems.
package problem

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
	"intercept-calc/internal/units"
)

// ErrInvalidInput is returned for negative or non-finite magnitudes entered by
// the caller.
var ErrInvalidInput = errors.New("invalid input")

// Field describes one input of a problem form.
type Field struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Value   any      `json:"value"`
	Options []string `json:"options,omitempty"`
}

// Result is the rendered outcome of a recomputation.
type Result struct {
	Problem telemetry.Problem `json:"problem"`
	// Outcome reports a collision or a successful intercept.
	Outcome bool     `json:"outcome"`
	Minutes float64  `json:"minutes"`
	Miles   float64  `json:"miles"`
	Lines   []string `json:"lines"`
}

// Text joins the result lines.
func (r Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Row stamps the result for the writers.
func (r Result) Row(gen *telemetry.Generator) telemetry.ResultRow {
	return gen.Result(r.Outcome, r.Minutes, r.Miles, r.Text())
}

// Presenter is implemented by each word problem.
type Presenter interface {
	Problem() telemetry.Problem
	BuildInputs() []Field
	BuildResult() Result
	ResetDefaults() (Result, error)
	Recompute() (Result, error)
	// Model returns the frame model for the current inputs.
	Model() (sim.Model, error)
}

func nonNegative(label string, v float64) error {
	if !(v >= 0) {
		return fmt.Errorf("%w: %s must be non-negative.", ErrInvalidInput, label)
	}
	return finite(label, v)
}

func finite(label string, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("%w: %s is too large.", ErrInvalidInput, label)
	}
	return nil
}

func toMPH(label string, v float64, u units.SpeedUnit) (float64, error) {
	mph, err := units.ToMPH(v, u)
	if err != nil {
		return 0, err
	}
	return mph, finite(label, mph)
}

func toMiles(label string, v float64, u units.DistanceUnit) (float64, error) {
	miles, err := units.ToMiles(v, u)
	if err != nil {
		return 0, err
	}
	return miles, finite(label, miles)
}

// checkFinite rejects results that overflowed while rendering.
func (r Result) checkFinite() error {
	if err := finite("Result time", r.Minutes); err != nil {
		return err
	}
	return finite("Result distance", r.Miles)
}
