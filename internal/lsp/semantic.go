package lsp

import (
	"firrtl/internal/lexer"
	"firrtl/token"
)

// SemanticTokenTypes is the legend advertised to clients. Token entries
// index into it.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"string",
	"comment",
}

// SemanticTokenModifiers is the modifier legend; entries set bits by index.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies the contextual token stream of text.
// Names are classified by the keyword that introduces them. Collection
// stops at the first lexical error.
func collectSemanticTokens(text string) []SemanticToken {
	var (
		tokens    []SemanticToken
		prev      token.Kind
		inVersion bool
	)

	l := lexer.New(text)
	for {
		ts, ok := l.NextToken()
		if !ok || ts.Token.Kind == token.Error {
			return tokens
		}

		kind := ts.Token.Kind
		switch {
		case kind == token.Version:
			inVersion = true
			tokens = append(tokens, makeToken(ts, "keyword"))
		case kind == token.Circuit:
			inVersion = false
			tokens = append(tokens, makeToken(ts, "keyword"))
		case kind == token.Identifier || kind == token.ID:
			if inVersion {
				tokens = append(tokens, makeToken(ts, "number"))
				break
			}
			tokenType, modifiers := classifyName(prev)
			tokens = append(tokens, makeToken(ts, tokenType, modifiers...))
		case kind == token.IntegerDec || kind == token.RadixInt:
			tokens = append(tokens, makeToken(ts, "number"))
		case kind == token.String:
			tokens = append(tokens, makeToken(ts, "string"))
		case kind == token.Info:
			tokens = append(tokens, makeToken(ts, "comment"))
		case kind.IsOperator():
			tokens = append(tokens, makeToken(ts, "function"))
		case isTypeKeyword(kind):
			tokens = append(tokens, makeToken(ts, "type"))
		case kind.IsKeyword():
			tokens = append(tokens, makeToken(ts, "keyword"))
		}

		if kind != token.Indent && kind != token.Dedent {
			prev = kind
		}
	}
}

// classifyName picks the token type and modifiers for a name from the
// token before it. Nodes are never reassigned, so they are readonly.
func classifyName(prev token.Kind) (string, []string) {
	switch prev {
	case token.Circuit, token.Module, token.ExtModule:
		return "namespace", []string{"declaration"}
	case token.Of:
		return "namespace", nil
	case token.Parameter:
		return "parameter", []string{"declaration"}
	case token.Period:
		return "property", nil
	case token.Node:
		return "variable", []string{"declaration", "readonly"}
	case token.Wire, token.Reg, token.RegReset, token.Inst,
		token.Input, token.Output, token.SMem, token.CMem, token.Mport:
		return "variable", []string{"declaration"}
	default:
		return "variable", nil
	}
}

func isTypeKeyword(k token.Kind) bool {
	switch k {
	case token.Clock, token.Reset, token.AsyncReset, token.UInt, token.SInt,
		token.ProbeType, token.Probe, token.Analog, token.Fixed:
		return true
	}
	return false
}

// makeToken creates a semantic token covering ts
func makeToken(ts lexer.TokenString, tokenType string, modifiers ...string) SemanticToken {
	length := ts.Span.Len()
	if ts.Token.Kind.IsOperator() && len(ts.Slice) > 0 && ts.Slice[len(ts.Slice)-1] == '(' {
		length--
	}

	bits := 0
	for _, m := range modifiers {
		bits |= 1 << indexOf(m, SemanticTokenModifiers)
	}

	return SemanticToken{
		Line:           uint32(ts.Pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(ts.Pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: bits,
	}
}

// encodeSemanticTokens encodes tokens into LSP wire format (delta-line,
// delta-start compression).
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		} else {
			deltaStart = t.StartChar
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
