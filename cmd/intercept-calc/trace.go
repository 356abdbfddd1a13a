package main

import (
	"time"

	"github.com/spf13/cobra"

	"intercept-calc/internal/logging"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
)

var (
	traceFlags       inputFlags
	traceStep        time.Duration
	traceSpeedFactor float64
	traceMaxSteps    int
	tracePrintOnly   bool
	traceLogFile     string
)

var traceCmd = &cobra.Command{
	Use:   "trace [collision|intercept]",
	Short: "Trace frame-by-frame positions until contact",
	Long: "trace steps the position model from its start until contact and writes every frame, " +
		"followed by the closed-form result, to STDOUT, GreptimeDB or NATS and an optional JSONL log.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(telemetry.ProblemCollision), string(telemetry.ProblemIntercept)},
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind telemetry.Problem
		if len(args) == 1 {
			kind = telemetry.Problem(args[0])
		}
		p, err := traceFlags.presenter(cmd, appCfg, kind)
		if err != nil {
			return err
		}
		m, err := p.Model()
		if err != nil {
			return err
		}
		res, err := p.Recompute()
		if err != nil {
			return err
		}

		w, cleanup, err := newWriters(appCfg, tracePrintOnly, traceLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := traceOptions(cmd, m.Problem())
		gen := telemetry.NewGenerator(m.Problem())
		tr, err := sim.Trace(cmd.Context(), m, opts, gen, w)
		if err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("trace finished", "run_id", tr.RunID, "steps", tr.Steps, "contact", tr.Last.Contact)
		return w.WriteResult(res.Row(gen))
	},
}

// traceOptions starts from the simulation config and applies set flags.
func traceOptions(cmd *cobra.Command, kind telemetry.Problem) sim.TraceOptions {
	s := appCfg.Simulation
	opts := sim.TraceOptions{Step: s.CollisionStep, SpeedFactor: s.SpeedFactor, MaxSteps: s.MaxSteps}
	if kind == telemetry.ProblemIntercept {
		opts.Step = s.InterceptStep
	}
	if cmd.Flags().Changed("step") {
		opts.Step = traceStep
	}
	if cmd.Flags().Changed("speed-factor") {
		opts.SpeedFactor = traceSpeedFactor
	}
	if cmd.Flags().Changed("max-steps") {
		opts.MaxSteps = traceMaxSteps
	}
	return opts
}

func init() {
	traceFlags.register(traceCmd)
	traceCmd.Flags().DurationVar(&traceStep, "step", sim.DefaultCollisionStep, "Simulated time per frame before the speed factor")
	traceCmd.Flags().Float64Var(&traceSpeedFactor, "speed-factor", 1, "Simulated time multiplier per frame, in (0, 2]")
	traceCmd.Flags().IntVar(&traceMaxSteps, "max-steps", sim.DefaultMaxSteps, "Stop after this many frames without contact")
	traceCmd.Flags().BoolVar(&tracePrintOnly, "print-only", false, "Print frames to STDOUT even when GreptimeDB or NATS is configured")
	traceCmd.Flags().StringVar(&traceLogFile, "log-file", "", "Path to export frames (JSONL); results go to <path>.results")
}
