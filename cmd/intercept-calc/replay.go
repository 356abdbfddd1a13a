package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"intercept-calc/internal/logging"
	"intercept-calc/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a frame log file",
	Long:  "replay feeds frame rows from a JSONL log back into GreptimeDB, NATS or STDOUT, paced by simulated time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newWriters(appCfg, replayPrintOnly, "")
		if err != nil {
			return err
		}
		defer cleanup()
		n, err := sim.ReplayLogFile(replayInput, writer, replaySpeed)
		logging.FromContext(cmd.Context()).Info("replay finished", "input", replayInput, "frames", n)
		return err
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to frame log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 for no delay)")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print frames to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
