// Writer implementation printing frames and results to STDOUT
package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"intercept-calc/internal/config"
	"intercept-calc/internal/telemetry"
)

const defaultWrapWidth = 80

// StdoutWriter prints human-friendly styled lines when attached to a terminal
// and JSON lines otherwise.
type StdoutWriter struct {
	cfg      *config.Config
	out      io.Writer
	colorize bool
	width    int
	once     sync.Once
	styles   stdoutStyles
}

type stdoutStyles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	contact lipgloss.Style
	miss    lipgloss.Style
}

func newStdoutStyles(r *lipgloss.Renderer) stdoutStyles {
	return stdoutStyles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")),
		value:   r.NewStyle().Foreground(lipgloss.Color("14")),
		contact: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		miss:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// NewStdoutWriter creates a StdoutWriter on os.Stdout, styled only when
// STDOUT is a terminal.
func NewStdoutWriter(cfg *config.Config) *StdoutWriter {
	fd := int(os.Stdout.Fd())
	colorize := term.IsTerminal(fd)
	width := defaultWrapWidth
	if colorize {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return newStdoutWriter(cfg, os.Stdout, colorize, width)
}

func newStdoutWriter(cfg *config.Config, out io.Writer, colorize bool, width int) *StdoutWriter {
	return &StdoutWriter{
		cfg:      cfg,
		out:      out,
		colorize: colorize,
		width:    width,
		styles:   newStdoutStyles(lipgloss.NewRenderer(out)),
	}
}

func (w *StdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	s := w.cfg.Simulation
	fmt.Fprintln(w.out, w.styles.header.Render("Simulation settings"))
	fmt.Fprintf(w.out, "%s %s  %s %s  %s %.2f\n",
		w.styles.label.Render("collision step:"), w.styles.value.Render(s.CollisionStep.String()),
		w.styles.label.Render("intercept step:"), w.styles.value.Render(s.InterceptStep.String()),
		w.styles.label.Render("speed factor:"), s.SpeedFactor)
}

// Write outputs a single frame row.
func (w *StdoutWriter) Write(row telemetry.FrameRow) error {
	if !w.colorize {
		return w.writeJSON(row)
	}
	w.once.Do(w.printOverview)
	line := fmt.Sprintf("%s %s %s %s %s %s",
		w.styles.label.Render(fmt.Sprintf("[%s #%d]", row.Problem, row.Step)),
		w.styles.label.Render("t="), w.styles.value.Render(row.SimTime().String()),
		w.styles.value.Render(fmt.Sprintf("A=%.5f mi", row.PositionA)),
		w.styles.value.Render(fmt.Sprintf("B=%.5f mi", row.PositionB)),
		w.contactLabel(row),
	)
	_, err := fmt.Fprintln(w.out, line)
	return err
}

func (w *StdoutWriter) contactLabel(row telemetry.FrameRow) string {
	switch {
	case !row.Contact:
		return ""
	case row.Problem == telemetry.ProblemIntercept && !row.Intercepted:
		return w.styles.miss.Render("NOT INTERCEPTED")
	case row.Problem == telemetry.ProblemIntercept:
		return w.styles.contact.Render("INTERCEPT")
	default:
		return w.styles.contact.Render("COLLISION")
	}
}

// WriteBatch outputs multiple frame rows.
func (w *StdoutWriter) WriteBatch(rows []telemetry.FrameRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult prints a result summary, word-wrapped to the terminal width.
func (w *StdoutWriter) WriteResult(row telemetry.ResultRow) error {
	if !w.colorize {
		return w.writeJSON(row)
	}
	w.once.Do(w.printOverview)
	style := w.styles.miss
	if row.Outcome {
		style = w.styles.contact
	}
	fmt.Fprintln(w.out, style.Render(string(row.Problem)))
	_, err := fmt.Fprintln(w.out, wordwrap.String(row.Summary, w.width))
	return err
}

func (w *StdoutWriter) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}
