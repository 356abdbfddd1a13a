package telemetry

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGeneratorFrame(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	gen := NewGenerator(ProblemCollision).WithClock(func() time.Time { return ts })

	if _, err := uuid.Parse(gen.RunID); err != nil {
		t.Fatalf("run id is not a uuid: %v", err)
	}

	row := gen.Frame(3, 1500*time.Millisecond, 0.25, 0.5, false, false)
	if row.RunID != gen.RunID || row.Problem != ProblemCollision {
		t.Errorf("unexpected identity: %+v", row)
	}
	if row.Step != 3 || row.SimSeconds != 1.5 {
		t.Errorf("unexpected step/time: %+v", row)
	}
	if row.SimTime() != 1500*time.Millisecond {
		t.Errorf("SimTime = %v", row.SimTime())
	}
	if !row.Timestamp.Equal(ts) || row.Timestamp.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", row.Timestamp)
	}
}

func TestGeneratorResult(t *testing.T) {
	gen := NewGenerator(ProblemIntercept)
	row := gen.Result(true, 2.5, 0.75, "We intercept the drone.")
	if row.Problem != ProblemIntercept || !row.Outcome {
		t.Errorf("unexpected row: %+v", row)
	}
	if time.Since(row.Timestamp) > time.Second {
		t.Errorf("timestamp too old: %v", row.Timestamp)
	}
}

func TestGeneratorRunIDsUnique(t *testing.T) {
	a := NewGenerator(ProblemCollision)
	b := NewGenerator(ProblemCollision)
	if a.RunID == b.RunID {
		t.Fatalf("expected distinct run ids")
	}
}

func TestTableNames(t *testing.T) {
	if (FrameRow{}).TableName() == "" || (ResultRow{}).TableName() == "" {
		t.Fatalf("table names must not be empty")
	}
}
