package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"firrtl/internal/ast"
	"firrtl/internal/errors"
)

// Diagnose transforms a lexical, syntax or conversion error into LSP
// diagnostics for IDE display. Parsing stops at the first error, so at most
// one diagnostic is produced.
func Diagnose(err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{toDiagnostic(errors.FromParse(err))}
}

// Lint reports structural warnings for a circuit parsed from text.
func Lint(text string, circuit *ast.Circuit) []protocol.Diagnostic {
	warnings := errors.Lint(text, circuit)
	out := make([]protocol.Diagnostic, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, toDiagnostic(w))
	}
	return out
}

func toDiagnostic(diag errors.CompilerError) protocol.Diagnostic {
	line := uint32(max(diag.Position.Line-1, 0))
	start := uint32(max(diag.Position.Column-1, 0))
	length := uint32(max(diag.Length, 1))

	message := diag.Message
	if diag.HelpText != "" {
		message += "\n" + diag.HelpText
	}
	for _, s := range diag.Suggestions {
		message += "\n" + s.Message
		if s.Replacement != "" {
			message += ": " + s.Replacement
		}
	}
	for _, note := range diag.Notes {
		message += "\nnote: " + note
	}

	severity := protocol.DiagnosticSeverityError
	if diag.Level == errors.Warning || errors.IsWarning(diag.Code) {
		severity = protocol.DiagnosticSeverityWarning
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: diag.Code},
		Source:   ptrString("firrtl-" + sourceFor(diag.Code)),
		Message:  message,
	}
}

func sourceFor(code string) string {
	switch errors.GetErrorCategory(code) {
	case "Lexer":
		return "lexer"
	case "Parser":
		return "parser"
	case "Warning":
		return "lint"
	default:
		return "tools"
	}
}

func ptrString(s string) *string {
	return &s
}
