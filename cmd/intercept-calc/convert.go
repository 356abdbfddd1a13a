package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"intercept-calc/internal/units"
)

var convertDistance bool

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a speed (or, with --distance, a distance) between units",
	Example: "  intercept-calc convert 60 mph km/h\n" +
		"  intercept-calc convert --distance 200 feet miles",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[0], err)
		}
		out, err := convert(v, args[1], args[2], convertDistance)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g %s = %.6g %s\n", v, args[1], out, args[2])
		return nil
	},
}

func convert(v float64, from, to string, distance bool) (float64, error) {
	if distance {
		f, err := units.ParseDistanceUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseDistanceUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertDistance(v, f, t)
	}
	f, err := units.ParseSpeedUnit(from)
	if err != nil {
		return 0, err
	}
	t, err := units.ParseSpeedUnit(to)
	if err != nil {
		return 0, err
	}
	return units.ConvertSpeed(v, f, t)
}

func init() {
	convertCmd.Flags().BoolVar(&convertDistance, "distance", false, "Convert a distance instead of a speed")
}
