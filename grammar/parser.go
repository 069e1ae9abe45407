package grammar

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"firrtl/internal/ast"
	firlexer "firrtl/internal/lexer"
)

// Lexer feeds the grammar. Trailing Dedents are flushed at end of input so
// every indented block closes.
var Lexer = firlexer.NewDefinition(firlexer.WithDedentFlush())

var buildParser = sync.OnceValues(func() (*participle.Parser[Circuit], error) {
	return participle.Build[Circuit](
		participle.Lexer(Lexer),
		participle.UseLookahead(4),
	)
})

// ParseString parses FIRRTL source into the grammar tree. Lexical errors
// surface as *lexer.InvalidTokenError or *lexer.InvalidIntegerError.
func ParseString(filename, source string) (*Circuit, error) {
	parser, err := buildParser()
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return parser.ParseString(filename, source)
}

// ParseCircuit parses source and converts it to an AST.
func ParseCircuit(filename, source string) (*ast.Circuit, error) {
	tree, err := ParseString(filename, source)
	if err != nil {
		return nil, err
	}
	return Convert(tree)
}

// ParseFile reads and parses a FIRRTL file, printing a caret-style report
// to stderr when the source does not parse.
func ParseFile(path string) (*Circuit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	circuit, err := ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, err
	}
	return circuit, nil
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	red := color.New(color.FgRed)

	pe, ok := err.(participle.Error)
	if !ok {
		red.Fprintf(os.Stderr, "Unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		red.Fprintf(os.Stderr, "Syntax error at unknown location: %s\n", err)
		return
	}

	line := strings.TrimRight(lines[pos.Line-1], "\r")
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	red.Fprintf(os.Stderr, "Syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	fmt.Fprintln(os.Stderr, line)
	color.New(color.FgHiRed).Fprintln(os.Stderr, caret)
	fmt.Fprintf(os.Stderr, "→ %s\n", pe.Message())
}
