// Trace rows with greptime tags
package telemetry

import (
	"os"
	"time"
)

// Problem names the word problem a row belongs to.
type Problem string

const (
	ProblemCollision Problem = "collision"
	ProblemIntercept Problem = "intercept"
)

// FrameRow represents one simulated frame for GreptimeDB and JSONL logs.
type FrameRow struct {
	RunID       string    `json:"run_id"`       // TAG
	Problem     Problem   `json:"problem"`      // TAG
	Step        int       `json:"step"`         // FIELD
	SimSeconds  float64   `json:"sim_seconds"`  // FIELD
	PositionA   float64   `json:"position_a"`   // FIELD, miles
	PositionB   float64   `json:"position_b"`   // FIELD, miles
	Contact     bool      `json:"contact"`      // FIELD
	Intercepted bool      `json:"intercepted"`  // FIELD
	Timestamp   time.Time `json:"ts"`           // TIME INDEX
}

// SimTime returns the simulated time of the frame.
func (r FrameRow) SimTime() time.Duration {
	return time.Duration(r.SimSeconds * float64(time.Second))
}

// ResultRow records the closed-form outcome of one calculation.
type ResultRow struct {
	RunID     string    `json:"run_id"`  // TAG
	Problem   Problem   `json:"problem"` // TAG
	Outcome   bool      `json:"outcome"` // FIELD, collides / possible
	Minutes   float64   `json:"minutes"` // FIELD, time to contact
	Miles     float64   `json:"miles"`   // FIELD, contact distance
	Summary   string    `json:"summary"` // FIELD
	Timestamp time.Time `json:"ts"`      // TIME INDEX
}

// FrameTableName holds the table name used when writing frames to GreptimeDB.
// It defaults to "trace_frames" but can be overridden via the
// GREPTIMEDB_FRAME_TABLE environment variable.
var FrameTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_FRAME_TABLE"); env != "" {
		return env
	}
	return "trace_frames"
}()

// ResultTableName is the GreptimeDB table for result rows, overridable via
// GREPTIMEDB_RESULT_TABLE.
var ResultTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_RESULT_TABLE"); env != "" {
		return env
	}
	return "calc_results"
}()

func (FrameRow) TableName() string {
	return FrameTableName
}

func (ResultRow) TableName() string {
	return ResultTableName
}
