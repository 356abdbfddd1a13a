package main

import (
	"github.com/spf13/cobra"

	"intercept-calc/internal/api"
	"intercept-calc/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Long: "serve exposes unit conversion, both word problems, traces and a websocket frame stream over HTTP, " +
		"with Prometheus metrics on /metrics. Results and frames are also sent to GreptimeDB or NATS when configured.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			appCfg.API.Addr = serveAddr
		}
		var opts []api.Option
		sinks, cleanup, err := externalWriters()
		if err != nil {
			return err
		}
		defer cleanup()
		if len(sinks) > 0 {
			var w sink = multi(sinks)
			if len(sinks) == 1 {
				w = sinks[0]
			}
			opts = append(opts, api.WithFrameWriter(w), api.WithResultWriter(w))
		}
		log := logging.FromContext(cmd.Context())
		return api.NewServer(appCfg, log, opts...).Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides api.addr and API_ADDR)")
}
