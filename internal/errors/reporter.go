package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"firrtl/internal/lexer"
	"firrtl/token"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured diagnostic with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string         // E0100 and so on
	Message     string         // Primary error message
	Position    token.Position // Zero Line when the diagnostic has no source location
	Length      int            // Width of the underline, in characters
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string
	Replacement string // Optional source text to use instead
}

// ErrorReporter renders diagnostics against one source file.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n"),
	}
}

// FormatError formats a diagnostic with rustc-like styling: a header, the
// offending line between its neighbours, an underline, then any
// suggestions, notes and help.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	s := &snippet{
		paint:  levelColor(err.Level),
		dim:    color.New(color.Faint).SprintFunc(),
		indent: strings.Repeat(" ", gutterWidth(err.Position.Line)),
	}

	s.header(err)
	s.location(er.filename, err.Position)
	if er.hasLine(err.Position.Line) {
		s.source(er, err.Position, err.Length)
	}
	s.suggestions(err.Suggestions)
	for _, note := range err.Notes {
		s.trailer(color.New(color.FgBlue).SprintFunc()("note:"), note)
	}
	if err.HelpText != "" {
		s.trailer(color.New(color.FgGreen).SprintFunc()("help:"), err.HelpText)
	}

	s.out.WriteString("\n")
	return s.out.String()
}

func (er *ErrorReporter) hasLine(line int) bool {
	return line > 0 && line <= len(er.lines)
}

// snippet accumulates one rendered diagnostic.
type snippet struct {
	out    strings.Builder
	paint  func(...any) string
	dim    func(...any) string
	indent string
}

func (s *snippet) header(err CompilerError) {
	if err.Code != "" {
		fmt.Fprintf(&s.out, "%s[%s]: %s\n", s.paint(string(err.Level)), err.Code, err.Message)
		return
	}
	fmt.Fprintf(&s.out, "%s: %s\n", s.paint(string(err.Level)), err.Message)
}

func (s *snippet) location(filename string, pos token.Position) {
	if pos.Line > 0 {
		fmt.Fprintf(&s.out, "%s %s %s:%d:%d\n", s.indent, s.dim("-->"), filename, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&s.out, "%s %s %s\n", s.indent, s.dim("-->"), filename)
	}
	s.rule()
}

func (s *snippet) rule() {
	fmt.Fprintf(&s.out, "%s %s\n", s.indent, s.dim("│"))
}

func (s *snippet) source(er *ErrorReporter, pos token.Position, length int) {
	bold := color.New(color.Bold).SprintFunc()
	width := len(s.indent)

	for n := pos.Line - 1; n <= pos.Line+1; n++ {
		if !er.hasLine(n) {
			continue
		}
		line := expandTabs(er.lines[n-1])
		if n != pos.Line {
			fmt.Fprintf(&s.out, "%s %s %s\n", s.dim(fmt.Sprintf("%*d", width, n)), s.dim("│"), line)
			continue
		}
		fmt.Fprintf(&s.out, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, n)), s.dim("│"), line)
		fmt.Fprintf(&s.out, "%s %s %s\n", s.indent, s.dim("│"), s.marker(er.lines[n-1], pos.Column, length))
	}
}

// marker underlines length characters from the 1-based column, measured
// on the raw line so tabs line up with their expansion.
func (s *snippet) marker(raw string, column, length int) string {
	prefix := raw[:runeOffset(raw, column-1)]
	pad := utf8.RuneCountInString(expandTabs(prefix))
	if column-1 > utf8.RuneCountInString(raw) {
		pad += column - 1 - utf8.RuneCountInString(raw)
	}
	return strings.Repeat(" ", pad) + s.paint(strings.Repeat("^", max(length, 1)))
}

func (s *snippet) suggestions(suggestions []Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	s.rule()
	for i, suggestion := range suggestions {
		if i == 0 {
			fmt.Fprintf(&s.out, "%s %s %s: %s\n", s.indent, cyan("help"), cyan("try"), suggestion.Message)
		} else {
			fmt.Fprintf(&s.out, "%s %s %s\n", s.indent, cyan("    "), suggestion.Message)
		}
		if suggestion.Replacement != "" {
			fmt.Fprintf(&s.out, "%s %s %s\n", s.indent, cyan("│"), cyan(suggestion.Replacement))
		}
	}
}

func (s *snippet) trailer(label, text string) {
	fmt.Fprintf(&s.out, "%s %s %s %s\n", s.indent, s.dim("│"), label, text)
}

func levelColor(level ErrorLevel) func(...any) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func gutterWidth(line int) int {
	return max(len(fmt.Sprint(line+1)), 3)
}

// expandTabs replaces tabs with spaces up to the next stop, the same stops
// the lexer uses for indentation.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			next := (col + lexer.TabWidth) &^ (lexer.TabWidth - 1)
			b.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// runeOffset returns the byte offset of the n-th rune of s, or len(s).
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
