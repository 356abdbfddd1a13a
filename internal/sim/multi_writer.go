package sim

import "intercept-calc/internal/telemetry"

// MultiWriter fan-outs frame and result rows to multiple writers.
type MultiWriter struct {
	framewriters  []FrameWriter
	resultwriters []ResultWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(fws []FrameWriter, rws []ResultWriter) *MultiWriter {
	return &MultiWriter{framewriters: fws, resultwriters: rws}
}

// Write sends a frame row to all writers.
func (mw *MultiWriter) Write(row telemetry.FrameRow) error {
	for _, w := range mw.framewriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple frame rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []telemetry.FrameRow) error {
	for _, w := range mw.framewriters {
		if err := WriteFrames(w, rows); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult sends a result row to all result writers.
func (mw *MultiWriter) WriteResult(row telemetry.ResultRow) error {
	for _, w := range mw.resultwriters {
		if err := w.WriteResult(row); err != nil {
			return err
		}
	}
	return nil
}
