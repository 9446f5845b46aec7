// Package loxerrors formats the interpreter's four error kinds — scan,
// parse, runtime, and driver errors — with source context,
// line/column information, and a caret pointing at the offending
// location, and a caret pointing at the offending column.
package loxerrors

import (
	"fmt"
	"strings"

	"github.com/loxscript/loxscript/internal/token"
)

// Kind classifies which pipeline stage raised an error.
type Kind int

const (
	// Scan marks a lexer-level error: e.g. an unterminated string or an
	// unexpected character.
	Scan Kind = iota
	// Parse marks a parser-level error: a token sequence that does not
	// match the grammar.
	Parse
	// Runtime marks an evaluator-level error: e.g. an undefined
	// variable or a type mismatch discovered during evaluation.
	Runtime
	// Driver marks an error from the command-line entry points
	// themselves (I/O failures, bad flags) rather than from the
	// language pipeline.
	Driver
)

func (k Kind) String() string {
	switch k {
	case Scan:
		return "scan error"
	case Parse:
		return "parse error"
	case Runtime:
		return "runtime error"
	case Driver:
		return "driver error"
	default:
		return "error"
	}
}

// Error is a single pipeline error pinned to a source location, with
// enough context to render a source-pointing diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Source  string // full source text, for rendering the offending line
	File    string // empty for stdin/REPL input
	Pos     token.Position
}

// New builds an Error. source and file may be empty when no source
// text is available (e.g. a driver error before any file is read).
func New(kind Kind, pos token.Position, message, source, file string) *Error {
	return &Error{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format()
}

// Format renders the error as a header line, the offending source
// line, a caret pointing at the column, and the message.
func (e *Error) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteByte('\n')

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(0, e.Pos.Column-1)))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

// sourceLine extracts a 1-indexed line from Source, or "" if Source is
// unavailable or lineNum is out of range.
func (e *Error) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, one per line group, with a
// summary header when there is more than one ("accumulated
// scan/parse errors are reported together").
func FormatAll(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(err.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
