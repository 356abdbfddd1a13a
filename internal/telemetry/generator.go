package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// Generator stamps rows for one trace run.
type Generator struct {
	RunID   string
	Problem Problem
	now     func() time.Time
}

// NewGenerator creates a generator with a fresh run id.
func NewGenerator(problem Problem) *Generator {
	return &Generator{RunID: uuid.New().String(), Problem: problem, now: time.Now}
}

// WithClock replaces the wall clock used for row timestamps.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Frame returns a FrameRow ready for writing.
func (g *Generator) Frame(step int, simTime time.Duration, posA, posB float64, contact, intercepted bool) FrameRow {
	return FrameRow{
		RunID:       g.RunID,
		Problem:     g.Problem,
		Step:        step,
		SimSeconds:  simTime.Seconds(),
		PositionA:   posA,
		PositionB:   posB,
		Contact:     contact,
		Intercepted: intercepted,
		Timestamp:   g.now().UTC(),
	}
}

// Result returns a ResultRow ready for writing.
func (g *Generator) Result(outcome bool, minutes, miles float64, summary string) ResultRow {
	return ResultRow{
		RunID:     g.RunID,
		Problem:   g.Problem,
		Outcome:   outcome,
		Minutes:   minutes,
		Miles:     miles,
		Summary:   summary,
		Timestamp: g.now().UTC(),
	}
}
