package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intercept-calc/internal/logging"
	"intercept-calc/internal/telemetry"
)

// Default simulated step per frame at speed factor 1.
const (
	DefaultCollisionStep = 300 * time.Millisecond
	DefaultInterceptStep = 3 * time.Second
	DefaultMaxSteps      = 100000

	// MaxSpeedFactor matches the fastest setting of the speed slider.
	MaxSpeedFactor = 2.0
)

// ErrBadTraceOptions reports a negative step or a speed factor outside (0, MaxSpeedFactor].
var ErrBadTraceOptions = errors.New("bad trace options")

// TraceOptions controls how simulated time advances between frames.
type TraceOptions struct {
	Step        time.Duration
	SpeedFactor float64
	MaxSteps    int
}

func (o TraceOptions) withDefaults(m Model) TraceOptions {
	if o.Step == 0 {
		o.Step = DefaultCollisionStep
		if m.Problem() == telemetry.ProblemIntercept {
			o.Step = DefaultInterceptStep
		}
	}
	if o.SpeedFactor == 0 {
		o.SpeedFactor = 1
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	return o
}

// TraceResult summarizes a finished trace.
type TraceResult struct {
	RunID string
	Steps int
	Last  Frame
}

// Trace advances the model from its start until contact, MaxSteps frames, or
// ctx is done, writing every frame. It does not wait on a clock.
func Trace(ctx context.Context, m Model, opts TraceOptions, gen *telemetry.Generator, w FrameWriter) (TraceResult, error) {
	log := logging.FromContext(ctx)
	opts = opts.withDefaults(m)
	if opts.Step < 0 || !(opts.SpeedFactor > 0) || opts.SpeedFactor > MaxSpeedFactor {
		return TraceResult{}, fmt.Errorf("%w: step %v, speed factor %v", ErrBadTraceOptions, opts.Step, opts.SpeedFactor)
	}
	if gen == nil {
		gen = telemetry.NewGenerator(m.Problem())
	}
	step := float64(opts.Step) * opts.SpeedFactor
	log.Info("starting trace", "problem", m.Problem(), "run_id", gen.RunID, "step", time.Duration(step), "max_steps", opts.MaxSteps)

	res := TraceResult{RunID: gen.RunID}
	for i := 0; i < opts.MaxSteps; i++ {
		if err := ctx.Err(); err != nil {
			log.Info("trace cancelled", "run_id", gen.RunID, "steps", res.Steps)
			return res, err
		}
		t := m.Start() + time.Duration(float64(i)*step)
		f := m.Frame(t)
		res.Steps = i + 1
		res.Last = f
		if w != nil {
			row := gen.Frame(i, f.SimulatedTime, f.PositionA, f.PositionB, f.Contact, f.Intercepted)
			if err := w.Write(row); err != nil {
				log.Error("frame write failed", "run_id", gen.RunID, "step", i, "err", err)
				return res, err
			}
		}
		if f.Contact {
			log.Info("contact reached", "run_id", gen.RunID, "steps", res.Steps, "sim_time", f.SimulatedTime, "intercepted", f.Intercepted)
			return res, nil
		}
	}
	log.Warn("trace stopped without contact", "run_id", gen.RunID, "steps", res.Steps)
	return res, nil
}
