package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"intercept-calc/internal/logging"
	"intercept-calc/internal/telemetry"
)

var (
	solveFlags     inputFlags
	solvePrintOnly bool
	solveLogFile   string
	solveShowForm  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [collision|intercept]",
	Short: "Solve a word problem",
	Long: "solve computes the closed-form answer for the car collision or drone intercept problem. " +
		"Inputs come from the config defaults, a scenario, or flags.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(telemetry.ProblemCollision), string(telemetry.ProblemIntercept)},
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind telemetry.Problem
		if len(args) == 1 {
			kind = telemetry.Problem(args[0])
		}
		p, err := solveFlags.presenter(cmd, appCfg, kind)
		if err != nil {
			return err
		}
		res, err := p.Recompute()
		if err != nil {
			return err
		}
		log := logging.FromContext(cmd.Context())
		log.Debug("solved", "problem", res.Problem, "outcome", res.Outcome)

		if solveShowForm {
			for _, f := range p.BuildInputs() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%-22s %v\n", f.Label, f.Value)
			}
		}

		w, cleanup, err := newWriters(appCfg, solvePrintOnly, solveLogFile)
		if err != nil {
			return err
		}
		defer cleanup()
		return w.WriteResult(res.Row(telemetry.NewGenerator(res.Problem)))
	},
}

func init() {
	solveFlags.register(solveCmd)
	solveCmd.Flags().BoolVar(&solvePrintOnly, "print-only", false, "Print the result to STDOUT even when GreptimeDB or NATS is configured")
	solveCmd.Flags().StringVar(&solveLogFile, "log-file", "", "Also append the result to this JSONL file (.results suffix)")
	solveCmd.Flags().BoolVar(&solveShowForm, "show-inputs", false, "Print the resolved inputs to STDERR")
}
