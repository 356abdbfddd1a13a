package sim

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"intercept-calc/internal/telemetry"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes trace frames and calculation results to GreptimeDB
// via the ingester client.
type GreptimeDBWriter struct {
	client      greptimeClient
	frameTable  string
	resultTable string
}

// NewGreptimeDBWriter connects to endpoint (host or host:port) and writes into
// the given tables of database.
func NewGreptimeDBWriter(endpoint, database, frameTable, resultTable string) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{
		client:      client,
		frameTable:  frameTable,
		resultTable: resultTable,
	}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		// no port given
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid GreptimeDB port %q: %w", portStr, err)
	}
	return host, port, nil
}

// Write inserts a single frame row.
func (w *GreptimeDBWriter) Write(row telemetry.FrameRow) error {
	return w.WriteBatch([]telemetry.FrameRow{row})
}

// WriteBatch inserts multiple frame rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.FrameRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.frameTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("problem", types.STRING)
	tbl.AddFieldColumn("step", types.INT64)
	tbl.AddFieldColumn("sim_seconds", types.FLOAT64)
	tbl.AddFieldColumn("position_a", types.FLOAT64)
	tbl.AddFieldColumn("position_b", types.FLOAT64)
	tbl.AddFieldColumn("contact", types.BOOLEAN)
	tbl.AddFieldColumn("intercepted", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(
			r.RunID,
			string(r.Problem),
			int64(r.Step),
			r.SimSeconds,
			r.PositionA,
			r.PositionB,
			r.Contact,
			r.Intercepted,
			r.Timestamp,
		); err != nil {
			return err
		}
	}
	return w.write(w.frameTable, tbl, len(rows))
}

// WriteResult inserts a calculation result row.
func (w *GreptimeDBWriter) WriteResult(r telemetry.ResultRow) error {
	tbl, err := table.New(w.resultTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("run_id", types.STRING)
	tbl.AddTagColumn("problem", types.STRING)
	tbl.AddFieldColumn("outcome", types.BOOLEAN)
	tbl.AddFieldColumn("minutes", types.FLOAT64)
	tbl.AddFieldColumn("miles", types.FLOAT64)
	tbl.AddFieldColumn("summary", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)
	if err := tbl.AddRow(
		r.RunID,
		string(r.Problem),
		r.Outcome,
		r.Minutes,
		r.Miles,
		r.Summary,
		r.Timestamp,
	); err != nil {
		return err
	}
	return w.write(w.resultTable, tbl, 1)
}

func (w *GreptimeDBWriter) write(name string, tbl *table.Table, n int) error {
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		slog.Error("GreptimeDB write failed", "table", name, "error", err)
		return err
	}
	slog.Debug("GreptimeDB write", "table", name, "rows", n)
	return nil
}
