package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"intercept-calc/internal/telemetry"
)

// sleep is replaced in tests.
var sleep = time.Sleep

// ReplayLog replays frame rows from r to writer, pacing them by the gap in
// simulated time between frames of the same run divided by speed. If
// speed <= 0, no artificial delay is inserted.
func ReplayLog(r io.Reader, writer FrameWriter, speed float64) (int, error) {
	dec := json.NewDecoder(r)
	var prev telemetry.FrameRow
	n := 0
	for {
		var row telemetry.FrameRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if n > 0 && speed > 0 && row.RunID == prev.RunID {
			diff := row.SimTime() - prev.SimTime()
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				sleep(diff)
			}
		}
		if err := writer.Write(row); err != nil {
			return n, err
		}
		prev = row
		n++
	}
}

// ReplayLogFile opens a file and replays its frame rows.
func ReplayLogFile(path string, writer FrameWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}
