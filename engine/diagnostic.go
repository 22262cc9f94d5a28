package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompile classifies diagnostics for source that failed to parse or compile.
	ErrCompile = errors.New("compile failure")

	// ErrRuntime classifies diagnostics for uncaught errors raised while running a chunk.
	ErrRuntime = errors.New("runtime failure")
)

// Phase tells where a Diagnostic was produced.
type Phase int

const (
	PhaseCompile Phase = iota
	PhaseRuntime
)

// Diagnostic is a structured compile or runtime error report.
type Diagnostic struct {
	Phase Phase
	Chunk string

	// Line is 1-based. Column and Offset are 0 when the engine does not report them precisely.
	Line   int
	Column int
	Offset int

	SourceLine string
	Message    string
}

// Error renders the report. The layout is consumed by people debugging
// extraction programs and must stay stable.
func (d *Diagnostic) Error() string {
	var b strings.Builder

	switch d.Phase {
	case PhaseCompile:
		b.WriteString("Failed to compile code!\n")
	default:
		b.WriteString("Runtime error!\n")
	}

	fmt.Fprintf(&b, "Line: %d\n", d.Line)
	fmt.Fprintf(&b, "Column: %d\n", d.Column)
	fmt.Fprintf(&b, "Offset: %d\n", d.Offset)
	fmt.Fprintf(&b, "Offending line:\n%s\n", d.SourceLine)
	fmt.Fprintf(&b, "Message:\n%s", d.Message)

	return b.String()
}

// Unwrap exposes the failure class to errors.Is.
func (d *Diagnostic) Unwrap() error {
	if d.Phase == PhaseCompile {
		return ErrCompile
	}
	return ErrRuntime
}

// locate fills SourceLine and Offset from source for the current Line and Column.
// Column counts characters consumed on the line, so the offset points at the
// last character of the offending token.
func (d *Diagnostic) locate(source string) {
	lines := strings.SplitAfter(source, "\n")
	if d.Line < 1 || d.Line > len(lines) {
		return
	}

	start := 0
	for _, l := range lines[:d.Line-1] {
		start += len(l)
	}

	text := strings.TrimRight(lines[d.Line-1], "\r\n")
	d.SourceLine = text

	column := d.Column - 1
	if column < 0 {
		column = 0
	}
	if column > len(text) {
		column = len(text)
	}
	d.Offset = start + column
}
