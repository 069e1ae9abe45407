package lexer

import (
	"strconv"
	"unicode/utf8"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"firrtl/token"
)

// rawRules are tried in order at each position; the first rule that
// matches wins. Radix literals outrank decimals, which outrank words, and
// the parameterised operators only match when their "(" follows directly.
// Words are classified afterwards so keywords never steal a prefix of a
// longer identifier.
var rawRules = []plexer.SimpleRule{
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Space", Pattern: ` `},
	{Name: "Tab", Pattern: `\t`},
	{Name: "Comment", Pattern: `;[^\r\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"`},
	{Name: "RadixInt", Pattern: `-?0(?:b[01]+|o[0-7]+|d[0-9]+|h[0-9A-Fa-f]+)`},
	{Name: "IntegerDec", Pattern: `-?[0-9]+`},
	{Name: "E1I1Op", Pattern: `(?:pad|shl|shr|head|tail)\(`},
	{Name: "E1I2Op", Pattern: `bits\(`},
	{Name: "DashedWord", Pattern: `(?:data-type|read-latency|write-latency|read-under-write)\b`},
	{Name: "Word", Pattern: `[_A-Za-z][_A-Za-z0-9]*`},
	{Name: "Punct", Pattern: "%\\[\\[|\\]\\]|<<|>>|[/\\[\\]<>{}()@`.,:=%]"},
	{Name: "Error", Pattern: `(?s).`},
}

var rawDefinition = plexer.MustSimple(rawRules)

var rawKinds = func() map[plexer.TokenType]string {
	kinds := make(map[plexer.TokenType]string, len(rawRules))
	for name, typ := range rawDefinition.Symbols() {
		kinds[typ] = name
	}
	return kinds
}()

// recognizer wraps the regex scanner and classifies each match into a flat
// token kind. It never fails: unmatched input becomes an Error token.
type recognizer struct {
	lex  plexer.Lexer
	done bool
	end  plexer.Position
}

func newRecognizer(filename, source string) *recognizer {
	lex, err := rawDefinition.LexString(filename, source)
	if err != nil {
		// The stateful lexer only fails here for unreadable input, which a
		// string cannot be.
		panic(err)
	}
	return &recognizer{lex: lex}
}

// next returns the next raw token, or false once the input is exhausted.
func (r *recognizer) next() (TokenString, bool) {
	if r.done {
		return TokenString{}, false
	}

	tok, err := r.lex.Next()
	if err != nil {
		// Unreachable with the catch-all Error rule; surface it as an
		// Error token rather than dropping it.
		r.done = true
		return TokenString{
			Token: token.Token{Kind: token.Error},
			Span:  token.Span{Start: r.end.Offset, End: r.end.Offset},
			Pos:   convertPos(r.end),
		}, true
	}
	if tok.EOF() {
		r.done = true
		r.end = tok.Pos
		return TokenString{}, false
	}

	ts := TokenString{
		Span:  token.Span{Start: tok.Pos.Offset, End: tok.Pos.Offset + len(tok.Value)},
		Pos:   convertPos(tok.Pos),
		Slice: tok.Value,
	}
	ts.Token, ts.err = classify(rawKinds[tok.Type], tok.Value)
	r.end = tok.Pos
	r.end.Offset = ts.Span.End
	return ts, true
}

// relex scans ts.Slice[i:] again as if it stood alone in the source, so
// a run swallowed by a wider rule can be split. ts must not span a line.
func relex(ts TokenString, i int) []TokenString {
	r := newRecognizer("", ts.Slice[i:])
	base := ts.Span.Start + i
	col := ts.Pos.Column + utf8.RuneCountInString(ts.Slice[:i]) - 1

	var out []TokenString
	for {
		sub, ok := r.next()
		if !ok {
			return out
		}
		sub.Span.Start += base
		sub.Span.End += base
		sub.Pos.Offset += base
		sub.Pos.Line = ts.Pos.Line
		sub.Pos.Column += col
		out = append(out, sub)
	}
}

func classify(rule, text string) (token.Token, error) {
	tok := token.Token{Text: text}
	switch rule {
	case "Newline":
		tok.Kind = token.Newline
	case "Space":
		tok.Kind = token.Space
	case "Tab":
		tok.Kind = token.Tab
	case "Comment":
		tok.Kind = token.Comment
	case "String":
		tok.Kind = token.String
	case "RadixInt":
		tok.Kind = token.RadixInt
	case "IntegerDec":
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			tok.Kind = token.Error
			return tok, err
		}
		tok.Kind = token.IntegerDec
		tok.Value = v
	case "E1I1Op":
		tok.Kind = token.E1I1Op
	case "E1I2Op":
		tok.Kind = token.E1I2Op
	case "DashedWord", "Word":
		tok.Kind = token.LookupWord(text)
	case "Punct":
		tok.Kind = token.LookupPunct(text)
	default:
		tok.Kind = token.Error
	}
	return tok, nil
}

func convertPos(p plexer.Position) token.Position {
	return token.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}
