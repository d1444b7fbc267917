// Package report renders feedprint results as styled tables with bar
// charts, indented JSON, or NDJSON.
//
// Reports are built by a Builder, which stamps each one with a generation
// time from an injectable clock and the trace id of the invocation. Table
// output is styled with Lip Gloss only when the destination is a terminal.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// ErrUnknownFormat indicates an output format other than table, json or ndjson.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalises a format name. An empty name selects FormatTable.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (must be table, json or ndjson)", ErrUnknownFormat, s)
	}
}

// Metadata identifies a report.
type Metadata struct {
	Kind        string    `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	TraceID     string    `json:"trace_id,omitempty"`
	Dataset     string    `json:"dataset,omitempty"`
	Scenario    string    `json:"scenario,omitempty"`
}

// Report is a renderable result.
type Report interface {
	// Meta returns the report's metadata.
	Meta() Metadata

	// records returns one value per NDJSON line.
	records() []any

	// writeTable writes the human-readable form.
	writeTable(w io.Writer, p *printer) error
}

// Options control rendering.
type Options struct {
	Format    string
	Styled    bool
	Precision int

	// Width is the terminal width used to size bar charts. Zero detects it
	// from w.
	Width int
}

// Render writes r to w in the requested format.
func Render(w io.Writer, r Report, opts Options) error {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err = enc.Encode(r); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, rec := range r.records() {
			if err = enc.Encode(rec); err != nil {
				return fmt.Errorf("encoding NDJSON record: %w", err)
			}
		}
		return nil
	default:
		width := opts.Width
		if width <= 0 {
			width = TerminalWidth(w, defaultWidth)
		}
		return r.writeTable(w, newPrinter(opts.Styled, opts.Precision, width))
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or fallback when w is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Builder creates reports that share a clock, trace id and dataset name.
type Builder struct {
	clock   clockwork.Clock
	traceID string
	dataset string
}

// NewBuilder returns a Builder. A nil clock uses real time.
func NewBuilder(clock clockwork.Clock, traceID, datasetName string) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{clock: clock, traceID: traceID, dataset: datasetName}
}

func (b *Builder) meta(kind, scenario string) Metadata {
	return Metadata{
		Kind:        kind,
		GeneratedAt: b.clock.Now().UTC(),
		TraceID:     b.traceID,
		Dataset:     b.dataset,
		Scenario:    scenario,
	}
}
