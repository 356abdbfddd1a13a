package sim

import (
	"encoding/json"
	"os"

	"intercept-calc/internal/telemetry"
)

// FileWriter writes frame and result data to JSONL files.
type FileWriter struct {
	frameFile  *os.File
	resultFile *os.File
	frameEnc   *json.Encoder
	resultEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. resultPath may be empty to skip results.
func NewFileWriter(framePath, resultPath string) (*FileWriter, error) {
	ff, err := os.Create(framePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{frameFile: ff, frameEnc: json.NewEncoder(ff)}
	if resultPath != "" {
		rf, err := os.Create(resultPath)
		if err != nil {
			ff.Close()
			return nil, err
		}
		fw.resultFile = rf
		fw.resultEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// Write logs a single frame row.
func (f *FileWriter) Write(row telemetry.FrameRow) error {
	return f.frameEnc.Encode(row)
}

// WriteBatch logs multiple frame rows.
func (f *FileWriter) WriteBatch(rows []telemetry.FrameRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult logs a result row, if enabled.
func (f *FileWriter) WriteResult(row telemetry.ResultRow) error {
	if f.resultEnc == nil {
		return nil
	}
	return f.resultEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.frameFile != nil {
		if e := f.frameFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.resultFile != nil {
		if e := f.resultFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
