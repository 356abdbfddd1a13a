package main

import (
	"os"

	"intercept-calc/internal/config"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
)

const defaultNATSSubject = "intercept-calc"

// sink is a writer handling both frames and results.
type sink interface {
	sim.FrameWriter
	sim.ResultWriter
}

// newWriters sets up frame and result writers based on flags and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(cfg *config.Config, printOnly bool, logFile string) (sink, func(), error) {
	sinks, cleanup, err := baseWriters(cfg, printOnly)
	if err != nil {
		return nil, nil, err
	}
	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile, logFile+".results")
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		sinks = append(sinks, fw)
		prev := cleanup
		cleanup = func() { fw.Close(); prev() }
	}
	if len(sinks) == 1 {
		return sinks[0], cleanup, nil
	}
	return multi(sinks), cleanup, nil
}

// baseWriters chooses the underlying writers based on printOnly flag and env
// vars. GreptimeDB and NATS are used when configured, STDOUT otherwise.
func baseWriters(cfg *config.Config, printOnly bool) ([]sink, func(), error) {
	cleanup := func() {}
	if printOnly {
		return []sink{sim.NewStdoutWriter(cfg)}, cleanup, nil
	}
	sinks, cleanup, err := externalWriters()
	if err != nil {
		return nil, nil, err
	}
	if len(sinks) == 0 {
		sinks = append(sinks, sim.NewStdoutWriter(cfg))
	}
	return sinks, cleanup, nil
}

// externalWriters connects to GreptimeDB (GREPTIMEDB_ENDPOINT) and NATS
// (NATS_URL) when their env vars are set.
func externalWriters() ([]sink, func(), error) {
	var sinks []sink
	cleanup := func() {}
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		db := os.Getenv("GREPTIMEDB_DATABASE")
		if db == "" {
			db = "public"
		}
		w, err := sim.NewGreptimeDBWriter(endpoint, db, telemetry.FrameTableName, telemetry.ResultTableName)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, w)
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		subject := os.Getenv("NATS_SUBJECT")
		if subject == "" {
			subject = defaultNATSSubject
		}
		w, err := sim.NewNATSWriter(url, subject)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, w)
		cleanup = func() { w.Close() }
	}
	return sinks, cleanup, nil
}

func multi(sinks []sink) *sim.MultiWriter {
	fws := make([]sim.FrameWriter, len(sinks))
	rws := make([]sim.ResultWriter, len(sinks))
	for i, s := range sinks {
		fws[i] = s
		rws[i] = s
	}
	return sim.NewMultiWriter(fws, rws)
}
