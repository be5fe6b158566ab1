package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/seitarof/gen-enumkeys/internal/model"
)

// Severity of a reported diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Reporter prints diagnostics. Implementations are safe for concurrent use.
type Reporter interface {
	Report(severity Severity, d *model.Diagnostic) error
}

// NewReporter returns a reporter for format writing to w. Text output is
// coloured when w is a terminal.
func NewReporter(format string, w io.Writer) (Reporter, error) {
	switch format {
	case FormatText:
		return newTextReporter(w, isTerminal(w)), nil
	case FormatJSON:
		return &jsonReporter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown diagnostic format %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type textReporter struct {
	mu     sync.Mutex
	w      io.Writer
	colors map[Severity]*color.Color
	pos    *color.Color
}

func newTextReporter(w io.Writer, colored bool) *textReporter {
	r := &textReporter{
		w: w,
		colors: map[Severity]*color.Color{
			SeverityError:   color.New(color.FgRed, color.Bold),
			SeverityWarning: color.New(color.FgYellow, color.Bold),
		},
		pos: color.New(color.Bold),
	}
	for _, c := range append([]*color.Color{r.pos}, r.colors[SeverityError], r.colors[SeverityWarning]) {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *textReporter) Report(severity Severity, d *model.Diagnostic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := d.Message
	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}
	label := string(severity)
	if c, ok := r.colors[severity]; ok {
		label = c.Sprint(label)
	}
	_, err := fmt.Fprintf(r.w, "%s: %s: %s\n", r.pos.Sprint(d.Pos.String()), label, msg)
	return err
}

type jsonDiagnostic struct {
	Severity Severity `json:"severity"`
	Kind     string   `json:"kind"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Message  string   `json:"message"`
}

type jsonReporter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (r *jsonReporter) Report(severity Severity, d *model.Diagnostic) error {
	msg := d.Message
	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(jsonDiagnostic{
		Severity: severity,
		Kind:     d.Kind.String(),
		File:     d.Pos.Filename,
		Line:     d.Pos.Line,
		Column:   d.Pos.Column,
		Message:  msg,
	})
}
