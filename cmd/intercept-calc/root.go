package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"intercept-calc/internal/config"
	"intercept-calc/internal/logging"
)

var (
	configPath string
	schemaPath string
	logLevel   string

	appCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "intercept-calc",
	Short: "Closing-speed word problem calculator",
	Long: "intercept-calc solves the car collision and drone intercept word problems, " +
		"converts speed and distance units, and traces frame-by-frame positions to STDOUT, JSONL logs, GreptimeDB or NATS.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := os.Getenv("LOG_LEVEL")
		if logLevel != "" {
			level = logLevel
		}
		logger := logging.NewWithWriter(os.Stderr, logging.ParseLevel(level))
		slog.SetDefault(logger)
		cmd.SetContext(logging.NewContext(cmd.Context(), logger))

		cfg, err := config.LoadOrDefault(configPath, schemaPath)
		if err != nil {
			return err
		}
		appCfg = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/problems.yaml", "Path to problem defaults YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "schemas/problems.cue", "Path to CUE schema file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}
