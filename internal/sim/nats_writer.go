package sim

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"intercept-calc/internal/telemetry"

	"github.com/nats-io/nats.go"
)

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSWriter publishes frames to "<subject>.frames" and results to
// "<subject>.results" as JSON.
type NATSWriter struct {
	mu      sync.Mutex
	pub     publisher
	conn    *nats.Conn
	subject string
}

// NewNATSWriter connects to url with automatic reconnects.
func NewNATSWriter(url, subject string) (*NATSWriter, error) {
	opts := []nats.Option{
		nats.Name("intercept-calc"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.Debug("NATS connection closed")
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("NATS connected", "url", url, "subject", subject)
	return &NATSWriter{pub: nc, conn: nc, subject: subject}, nil
}

func (w *NATSWriter) publish(suffix string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", suffix, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	subj := w.subject + "." + suffix
	if err := w.pub.Publish(subj, data); err != nil {
		return fmt.Errorf("publish to %s: %w", subj, err)
	}
	return nil
}

// Write publishes a frame row.
func (w *NATSWriter) Write(row telemetry.FrameRow) error {
	return w.publish("frames", row)
}

// WriteResult publishes a result row.
func (w *NATSWriter) WriteResult(row telemetry.ResultRow) error {
	return w.publish("results", row)
}

// Close drains the connection.
func (w *NATSWriter) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Drain()
}
