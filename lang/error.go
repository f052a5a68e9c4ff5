package lang

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/smf/pkg"
)

// ErrGrammarRejected is matched by every [ParseError].
var ErrGrammarRejected = pkg.NewError("grammar rejected input")

// ParseError describes the first place the source text fails to match the
// grammar.
type ParseError struct {
	Pos      Position
	Expected []string // tokens that would have been accepted
	Found    string   // offending text, or "EOF"
	File     string   // optional source name
	Source   string   // the original source input
}

func newParseError(p *parser, expected ...string) *ParseError {
	return &ParseError{
		Pos:      p.position(),
		Expected: expected,
		Found:    p.found(),
		File:     p.file,
		Source:   string(p.input),
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg, snippet, expected := e.formatWithContext()

	if len(expected) == 0 {
		return msg + snippet
	}

	return msg + snippet + "\texpected: " + strings.Join(expected, ", ")
}

// Unwrap returns [ErrGrammarRejected].
func (e *ParseError) Unwrap() error { return ErrGrammarRejected }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrGrammarRejected.Error()),
		slog.String("pos", e.Pos.String()),
		slog.String("found", e.Found),
	}

	if len(e.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", e.Expected))
	}

	if e.File != "" {
		attrs = append(attrs, slog.String("file", e.File))
	}

	return slog.GroupValue(attrs...)
}

// formatWithContext formats the parse error with source code context.
func (e *ParseError) formatWithContext() (string, string, []string) {
	var buf, src strings.Builder

	// Write error location and description
	buf.WriteString("parse error at ")

	if e.File != "" {
		buf.WriteString(e.File)
		buf.WriteString(", ")
	}

	buf.WriteString("line ")
	buf.WriteString(strconv.Itoa(e.Pos.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Pos.Column))
	buf.WriteString(": unexpected ")
	buf.WriteString(e.Found)
	buf.WriteString("\n")

	lines := strings.Split(e.Source, "\n")

	// Show the offending line if within bounds
	if e.Pos.Line > 0 && e.Pos.Line <= len(lines) {
		line := strings.TrimRight(lines[e.Pos.Line-1], "\r")

		src.WriteString("  ")
		src.WriteString(strconv.Itoa(e.Pos.Line))
		src.WriteString(" | ")
		src.WriteString(line)
		src.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		lineNumWidth := len(strconv.Itoa(e.Pos.Line))
		padding := strings.Repeat(" ", lineNumWidth+5)

		if e.Pos.Column > 0 {
			padding += strings.Repeat(" ", e.Pos.Column-1)
		}

		src.WriteString(padding + "^\n")
	}

	exp := make([]string, 0, len(e.Expected))
	for _, x := range e.Expected {
		exp = append(exp, strconv.Quote(x))
	}

	slices.Sort(exp)

	return buf.String(), src.String(), exp
}
