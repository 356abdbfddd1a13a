package sim

import "intercept-calc/internal/telemetry"

// FrameWriter is an interface to support different frame output writers.
type FrameWriter interface {
	Write(telemetry.FrameRow) error
}

// ResultWriter handles closed-form calculation results.
type ResultWriter interface {
	WriteResult(telemetry.ResultRow) error
}

// Optional: writers may support batch mode for frames.
type batchWriter interface {
	WriteBatch([]telemetry.FrameRow) error
}

// WriteFrames writes rows through WriteBatch when w supports it.
func WriteFrames(w FrameWriter, rows []telemetry.FrameRow) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// CollectWriter keeps frames and results in memory.
type CollectWriter struct {
	Frames  []telemetry.FrameRow
	Results []telemetry.ResultRow
}

// Write appends a frame.
func (c *CollectWriter) Write(r telemetry.FrameRow) error {
	c.Frames = append(c.Frames, r)
	return nil
}

// WriteResult appends a result.
func (c *CollectWriter) WriteResult(r telemetry.ResultRow) error {
	c.Results = append(c.Results, r)
	return nil
}
