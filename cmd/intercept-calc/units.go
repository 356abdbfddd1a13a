package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"intercept-calc/internal/scenario"
	"intercept-calc/internal/units"
)

var unitsScenarios bool

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List recognized units and built-in scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if unitsScenarios {
			all := scenario.BuiltIn(appCfg)
			for _, name := range scenario.Names(appCfg) {
				sc := all[name]
				fmt.Fprintf(out, "%-16s %-10s %s\n", name, sc.Problem, sc.Description)
			}
			return nil
		}
		speeds := make([]string, 0, len(units.SpeedUnits()))
		for _, u := range units.SpeedUnits() {
			speeds = append(speeds, string(u))
		}
		distances := make([]string, 0, len(units.DistanceUnits()))
		for _, u := range units.DistanceUnits() {
			distances = append(distances, string(u))
		}
		fmt.Fprintf(out, "speed:    %s\n", strings.Join(speeds, ", "))
		fmt.Fprintf(out, "distance: %s\n", strings.Join(distances, ", "))
		return nil
	},
}

func init() {
	unitsCmd.Flags().BoolVar(&unitsScenarios, "scenarios", false, "List built-in scenarios instead of units")
}
