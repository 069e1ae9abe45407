package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"firrtl/grammar"
	"firrtl/internal/lexer"
	"firrtl/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewError creates a new error builder
func NewError(code, message string, pos token.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos token.Position) *DiagnosticBuilder {
	b := NewError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

// FromLexical converts a lexer failure into a diagnostic. It reports false
// when err does not carry a lexical error.
func FromLexical(err error) (CompilerError, bool) {
	var tokErr *lexer.InvalidTokenError
	if stderrors.As(err, &tokErr) {
		length := tokErr.Span.Len()
		if tokErr.Escape {
			return NewError(ErrorMalformedEscape, tokErr.Message(), tokErr.Pos).
				WithLength(length).
				WithNote("backticks may only wrap a decimal integer, as in `0`").
				Build(), true
		}
		return NewError(ErrorInvalidToken, tokErr.Message(), tokErr.Pos).
			WithLength(length).
			Build(), true
	}

	var intErr *lexer.InvalidIntegerError
	if stderrors.As(err, &intErr) {
		return NewError(ErrorInvalidInteger, intErr.Message(), intErr.Pos).
			WithLength(intErr.Span.Len()).
			WithHelp("integer literals must fit in a signed 64-bit value").
			Build(), true
	}

	return CompilerError{}, false
}

// FromParse converts any error returned by grammar.ParseString or
// grammar.ParseCircuit into a diagnostic.
func FromParse(err error) CompilerError {
	if diag, ok := FromLexical(err); ok {
		return diag
	}

	var convErr *grammar.ConversionError
	if stderrors.As(err, &convErr) {
		var numErr *strconv.NumError
		if stderrors.As(convErr.Err, &numErr) {
			return NewError(ErrorInvalidInteger, convErr.Message(), fromParticiple(convErr.Position())).
				WithLength(len(convErr.Text)).
				WithHelp("integer literals must fit in a signed 64-bit value").
				Build()
		}
		return NewError(ErrorInvalidWidth, convErr.Message(), fromParticiple(convErr.Position())).Build()
	}

	var unexpected *participle.UnexpectedTokenError
	if stderrors.As(err, &unexpected) {
		builder := NewError(ErrorSyntax, unexpected.Message(), fromParticiple(unexpected.Position())).
			WithLength(len(unexpected.Unexpected.Value))
		similar := findSimilarNames(unexpected.Unexpected.Value, token.Keywords())
		switch len(similar) {
		case 0:
		case 1:
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
		default:
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
		}
		return builder.Build()
	}

	var perr participle.Error
	if stderrors.As(err, &perr) {
		return NewError(ErrorSyntax, perr.Message(), fromParticiple(perr.Position())).Build()
	}

	return NewError(ErrorSyntax, err.Error(), token.Position{}).Build()
}

// FromIO reports a file that could not be read.
func FromIO(path string, err error) CompilerError {
	builder := NewError(ErrorIO, fmt.Sprintf("cannot read '%s': %v", path, err), token.Position{})
	if stderrors.Is(err, fs.ErrNotExist) {
		builder = builder.WithHelp("check the path and try again")
	}
	return builder.Build()
}

func fromParticiple(pos plexer.Position) token.Position {
	return token.Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	slices.Sort(similar)
	return slices.Compact(similar)
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
