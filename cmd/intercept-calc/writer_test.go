package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"intercept-calc/internal/config"
	"intercept-calc/internal/sim"
	"intercept-calc/internal/telemetry"
)

func TestNewWritersPrintOnly(t *testing.T) {
	w, cleanup, err := newWriters(config.Default(), true, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", w)
	}
}

func TestNewWritersStdoutFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	t.Setenv("NATS_URL", "")
	w, cleanup, err := newWriters(config.Default(), false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", w)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.jsonl")
	w, cleanup, err := newWriters(config.Default(), true, path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}
	gen := telemetry.NewGenerator(telemetry.ProblemCollision)
	if err := w.Write(gen.Frame(0, 0, 0, 0.04, false, false)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.WriteResult(gen.Result(true, 0.126, 0.095, "The cars will collide")); err != nil {
		t.Fatalf("write result failed: %v", err)
	}
	cleanup()
	for _, p := range []string{path, path + ".results"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", p)
		}
	}
}

func TestNewWritersBadLogFile(t *testing.T) {
	_, _, err := newWriters(config.Default(), true, filepath.Join(t.TempDir(), "missing", "frames.jsonl"))
	if err == nil {
		t.Fatalf("expected error for unwritable log file")
	}
}

func TestExternalWritersNone(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	t.Setenv("NATS_URL", "")
	sinks, cleanup, err := externalWriters()
	if err != nil {
		t.Fatalf("externalWriters: %v", err)
	}
	cleanup()
	if len(sinks) != 0 {
		t.Fatalf("expected no external sinks, got %d", len(sinks))
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := &sim.CollectWriter{}, &sim.CollectWriter{}
	w := multi([]sink{a, b})
	if err := w.Write(telemetry.FrameRow{Timestamp: time.Unix(0, 0)}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(a.Frames) != 1 || len(b.Frames) != 1 {
		t.Fatalf("frames not fanned out")
	}
}
