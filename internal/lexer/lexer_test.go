package lexer

import (
	"errors"
	"io"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firrtl/token"
)

func kinds(tokens []TokenString) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, ts := range tokens {
		out = append(out, ts.Token.Kind)
	}
	return out
}

func toks(tokens []TokenString) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, ts := range tokens {
		out = append(out, ts.Token)
	}
	return out
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../examples/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestRegLine(t *testing.T) {
	tokens := Tokenize("  reg x : UInt, clock")

	expected := []token.Token{
		{Kind: token.Indent},
		{Kind: token.Reg, Text: "reg"},
		{Kind: token.Identifier, Text: "x"},
		{Kind: token.Symbol, Text: ":"},
		{Kind: token.UInt, Text: "UInt"},
		{Kind: token.Symbol, Text: ","},
		{Kind: token.Identifier, Text: "clock"},
	}
	assert.Equal(t, expected, toks(tokens))
}

func TestVersionHeader(t *testing.T) {
	tokens := Tokenize("FIRRTL version 3.3.0\n")

	expected := []token.Token{
		{Kind: token.FIRRTL, Text: "FIRRTL"},
		{Kind: token.Version, Text: "version"},
		{Kind: token.IntegerDec, Text: "3", Value: 3},
		{Kind: token.Period, Text: "."},
		{Kind: token.ID, Text: "3", Value: 3},
		{Kind: token.Period, Text: "."},
		{Kind: token.ID, Text: "0", Value: 0},
	}
	assert.Equal(t, expected, toks(tokens))
}

func TestIndentDedent(t *testing.T) {
	src := "a\n  b\n    c\n\n    d\ne\n"
	tokens := Tokenize(src)

	assert.Equal(t, []token.Kind{
		token.Identifier,
		token.Indent, token.Identifier,
		token.Indent, token.Identifier,
		token.Identifier,
		token.Dedent, token.Dedent, token.Identifier,
	}, kinds(tokens))
}

func TestDedentWithoutFlush(t *testing.T) {
	l := New("a\n  b\n    c\n")
	var indents, dedents int
	for {
		ts, ok := l.NextToken()
		if !ok {
			break
		}
		switch ts.Token.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	assert.Equal(t, 2, indents)
	assert.Equal(t, 0, dedents)
	assert.Equal(t, 3, l.Depth())
}

func TestDedentFlush(t *testing.T) {
	tokens := Tokenize("a\n  b\n    c\n", WithDedentFlush())

	assert.Equal(t, []token.Kind{
		token.Identifier,
		token.Indent, token.Identifier,
		token.Indent, token.Identifier,
		token.Dedent, token.Dedent,
	}, kinds(tokens))
}

func TestIndentBalance(t *testing.T) {
	inputs := []string{
		"a\n  b\n    c\n",
		"a\n  b\nc\n  d\n      e\n",
		"a\n    b\n  c\n",
		readFixture(t, "gcd.fir"),
		readFixture(t, "sram.fir"),
	}

	for _, src := range inputs {
		l := New(src)
		balance := 0
		for {
			ts, ok := l.NextToken()
			if !ok {
				break
			}
			switch ts.Token.Kind {
			case token.Indent:
				balance++
			case token.Dedent:
				balance--
			}
		}
		assert.Equal(t, l.Depth()-1, balance, "input %q", src)
	}
}

func TestTabExpansion(t *testing.T) {
	tests := []struct {
		prefix string
		want   int
	}{
		{"\t", 2},
		{" \t", 2},
		{"  \t", 4},
		{"   \t", 4},
		{"\t\t", 4},
		{"\t \t", 4},
	}

	for _, tt := range tests {
		l := New(tt.prefix + "x")
		ts, ok := l.NextToken()
		require.True(t, ok)
		assert.Equal(t, token.Indent, ts.Token.Kind)
		assert.Equal(t, tt.want, l.indentLevels[len(l.indentLevels)-1], "prefix %q", tt.prefix)
	}
}

func TestAggregateFieldIDs(t *testing.T) {
	tokens := Tokenize("output io : { flip a : UInt<2>, flip b : UInt<2> }")
	for _, ts := range tokens {
		if ts.Slice == "2" {
			assert.Equal(t, token.IntegerDec, ts.Token.Kind)
		}
	}

	tokens = Tokenize("output io : { 0 : UInt<1>, 1 : UInt<1>[3] }")
	var ids, ints []int64
	for _, ts := range tokens {
		switch ts.Token.Kind {
		case token.ID:
			ids = append(ids, ts.Token.Value)
		case token.IntegerDec:
			ints = append(ints, ts.Token.Value)
		}
	}
	assert.Equal(t, []int64{0, 1}, ids)
	assert.Equal(t, []int64{1, 1, 3}, ints)
}

func TestPrimOpParenthesesBalance(t *testing.T) {
	l := New("node x = { a : UInt<1> }\nnode y = eq(a, tail(b, 1))\nwire w : { 0 : UInt }")
	var last TokenString
	for {
		ts, ok := l.NextToken()
		if !ok {
			break
		}
		if ts.Slice == "0" {
			last = ts
		}
	}
	assert.Equal(t, token.ID, last.Token.Kind)
	assert.Equal(t, 0, l.parenthesis)
}

func TestEscapedID(t *testing.T) {
	tokens := Tokenize("`42`")
	require.Len(t, tokens, 1)
	assert.Equal(t, token.Token{Kind: token.ID, Text: "42", Value: 42}, tokens[0].Token)

	tokens = Tokenize("`abc`")
	require.NotEmpty(t, tokens)
	assert.Equal(t, token.Error, tokens[0].Token.Kind)

	var tokErr *InvalidTokenError
	require.ErrorAs(t, tokens[0].Err(), &tokErr)
	assert.True(t, tokErr.Escape)
	assert.Equal(t, "abc", tokErr.Text)
}

func TestEscapedFieldAfterDot(t *testing.T) {
	tokens := Tokenize("connect io.`7`, x")

	assert.Equal(t, []token.Kind{
		token.Connect, token.Identifier, token.Period, token.ID,
		token.Symbol, token.Identifier,
	}, kinds(tokens))
	assert.Equal(t, int64(7), tokens[3].Token.Value)
}

func TestAnnotationElision(t *testing.T) {
	withAnno := "circuit GCD :%[[ {\"class\":\"x\", \"target\": [1, 2]} ]]\n  module GCD :\n"
	without := "circuit GCD :\n  module GCD :\n"

	assert.Equal(t, toks(Tokenize(without)), toks(Tokenize(withAnno)))
}

func TestMultiLineAnnotation(t *testing.T) {
	withAnno := "circuit A :%[[\n  {\n    \"class\": \"y\"\n  }\n]]\n  module A :\n"
	without := "circuit A :\n  module A :\n"

	assert.Equal(t, toks(Tokenize(without)), toks(Tokenize(withAnno)))
}

func TestAnnotationSemicolonIsText(t *testing.T) {
	withAnno := "circuit A :%[[{\"a\": 1}; x]]\n  module A :\n"
	without := "circuit A :\n  module A :\n"

	assert.Equal(t, toks(Tokenize(without)), toks(Tokenize(withAnno)))
}

func TestInfoCapture(t *testing.T) {
	tokens := Tokenize("wire w : UInt<3> @[src/main/scala/gcd/SRAM.scala 26:23]")
	last := tokens[len(tokens)-1]

	assert.Equal(t, token.Info, last.Token.Kind)
	assert.Equal(t, "src/main/scala/gcd/SRAM.scala 26:23", last.Token.Text)
	assert.Equal(t, "@[src/main/scala/gcd/SRAM.scala 26:23]", last.Slice)
}

func TestInfoNestedBrackets(t *testing.T) {
	tokens := Tokenize("skip @[a[1] b]")
	last := tokens[len(tokens)-1]

	assert.Equal(t, token.Info, last.Token.Kind)
	assert.Equal(t, "a[1] b", last.Token.Text)

	tokens = Tokenize("skip @[x[y]]")
	last = tokens[len(tokens)-1]
	assert.Equal(t, token.Info, last.Token.Kind)
	assert.Equal(t, "x[y]", last.Token.Text)
}

func TestInfoSemicolonIsText(t *testing.T) {
	src := "node x = y @[a.scala 1:2; b]\nnode z = w\n"
	tokens := Tokenize(src)

	require.Equal(t, []token.Kind{
		token.Node, token.Identifier, token.Symbol, token.Identifier, token.Info,
		token.Node, token.Identifier, token.Symbol, token.Identifier,
	}, kinds(tokens))
	info := tokens[4]
	assert.Equal(t, "a.scala 1:2; b", info.Token.Text)
	assert.Equal(t, "@[a.scala 1:2; b]", info.Slice)
	assert.Equal(t, token.Span{Start: 11, End: 28}, info.Span)

	tokens = Tokenize("skip @[x[y; z]] ; trailing\nskip")
	require.Equal(t, []token.Kind{token.Skip, token.Info, token.Skip}, kinds(tokens))
	assert.Equal(t, "x[y; z]", tokens[1].Token.Text)
	assert.Equal(t, 2, tokens[2].Pos.Line)
}

func TestInfoToleratesUnknownCharacters(t *testing.T) {
	tokens := Tokenize("skip @[Foo.scala 1:2 - $weird]")
	last := tokens[len(tokens)-1]

	assert.Equal(t, token.Info, last.Token.Kind)
	assert.Equal(t, "Foo.scala 1:2 - $weird", last.Token.Text)
}

func TestDoubleCloseSquareSplits(t *testing.T) {
	tokens := Tokenize("connect a[b[0]], c")

	assert.Equal(t, []token.Kind{
		token.Connect, token.Identifier,
		token.LeftSquare, token.Identifier, token.LeftSquare, token.IntegerDec,
		token.RightSquare, token.RightSquare,
		token.Symbol, token.Identifier,
	}, kinds(tokens))
}

func TestDoubleCloseAngleSplitsInsideAngles(t *testing.T) {
	tokens := Tokenize("output p : Probe<UInt<1>>")
	n := len(tokens)

	assert.Equal(t, token.RightAngle, tokens[n-1].Token.Kind)
	assert.Equal(t, token.RightAngle, tokens[n-2].Token.Kind)

	tokens = Tokenize("x >> y")
	assert.Equal(t, token.DoubleRight, tokens[1].Token.Kind)
}

func TestCommentsAndCRLF(t *testing.T) {
	src := "; leading comment\r\ncircuit A : ; trailing\r\n  ; indented comment\r\n  module A :\r\n"
	tokens := Tokenize(src)

	assert.Equal(t, []token.Kind{
		token.Circuit, token.Identifier, token.Symbol,
		token.Indent, token.Module, token.Identifier, token.Symbol,
	}, kinds(tokens))
}

func TestKeywordsAndOperators(t *testing.T) {
	tokens := Tokenize("regreset reg region add(a, b) pad(a, 2) bits(a, 3, 1) not(a) data-type")

	assert.Equal(t, token.RegReset, tokens[0].Token.Kind)
	assert.Equal(t, token.Reg, tokens[1].Token.Kind)
	assert.Equal(t, token.Identifier, tokens[2].Token.Kind)
	assert.Equal(t, token.E2Op, tokens[3].Token.Kind)
	assert.Equal(t, token.LeftParenthesis, tokens[4].Token.Kind)

	var ops []string
	for _, ts := range tokens {
		if ts.Token.Kind.IsOperator() {
			ops = append(ops, ts.Token.Text)
		}
	}
	assert.Equal(t, []string{"add", "pad(", "bits(", "not"}, ops)
	assert.Equal(t, token.DataType, tokens[len(tokens)-1].Token.Kind)
}

func TestRadixLiterals(t *testing.T) {
	tokens := Tokenize("UInt<8>(0b101) SInt<8>(-0h1F) UInt(0o17) UInt(0d99) UInt(12)")

	var radix []string
	for _, ts := range tokens {
		if ts.Token.Kind == token.RadixInt {
			radix = append(radix, ts.Token.Text)
		}
	}
	assert.Equal(t, []string{"0b101", "-0h1F", "0o17", "0d99"}, radix)
}

func TestIteratorInvalidInteger(t *testing.T) {
	l := New("node x = UInt(99999999999999999999)")

	var err error
	for {
		_, err = l.Next()
		if err != nil {
			break
		}
	}
	require.NotEqual(t, io.EOF, err)

	var intErr *InvalidIntegerError
	require.ErrorAs(t, err, &intErr)
	assert.Equal(t, "99999999999999999999", intErr.Text)
	assert.True(t, errors.Is(err, strconv.ErrRange))
}

func TestIteratorInvalidToken(t *testing.T) {
	l := New("x ? y")

	s, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, token.Identifier, s.Token.Kind)
	assert.Equal(t, 0, s.Start)
	assert.Equal(t, 1, s.End)

	_, err = l.Next()
	var tokErr *InvalidTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, "?", tokErr.Text)
	assert.Equal(t, token.Span{Start: 2, End: 3}, tokErr.Span)
	assert.Equal(t, 3, tokErr.Pos.Column)
}

func TestAllStopsAtFirstError(t *testing.T) {
	var seen []token.Kind
	var errs int
	for s, err := range New("a ? b ? c").All() {
		if err != nil {
			errs++
			continue
		}
		seen = append(seen, s.Token.Kind)
	}
	assert.Equal(t, []token.Kind{token.Identifier}, seen)
	assert.Equal(t, 1, errs)
}

func TestIteratorEOF(t *testing.T) {
	l := New("")
	_, err := l.Next()
	assert.Equal(t, io.EOF, err)
	_, err = l.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFixturesLexCleanly(t *testing.T) {
	for _, name := range []string{"gcd.fir", "sram.fir"} {
		t.Run(name, func(t *testing.T) {
			src := readFixture(t, name)
			tokens := Tokenize(src)
			require.NotEmpty(t, tokens)

			prev := 0
			for _, ts := range tokens {
				require.NotEqual(t, token.Error, ts.Token.Kind, "error token %q at %s", ts.Slice, ts.Pos)
				require.False(t, ts.Token.Kind.IsWhitespace(), "whitespace leaked at %s", ts.Pos)
				require.GreaterOrEqual(t, ts.Span.Start, prev, "span went backwards at %s", ts.Pos)
				prev = ts.Span.Start
			}
		})
	}
}

func TestGCDStructure(t *testing.T) {
	tokens := Tokenize(readFixture(t, "gcd.fir"), WithDedentFlush())

	var indents, dedents, infos, depth, maxDepth int
	for _, ts := range tokens {
		switch ts.Token.Kind {
		case token.Indent:
			indents++
			depth++
			maxDepth = max(maxDepth, depth)
		case token.Dedent:
			dedents++
			depth--
		case token.Info:
			infos++
		}
	}

	// module list, module body, and one level inside each when/else branch
	assert.Equal(t, 5, indents)
	assert.Equal(t, indents, dedents)
	assert.Equal(t, 3, maxDepth)
	assert.Equal(t, 20, infos)
}

func TestSRAMStructure(t *testing.T) {
	tokens := Tokenize(readFixture(t, "sram.fir"), WithDedentFlush())

	var indents, dedents, depth, maxDepth int
	for _, ts := range tokens {
		switch ts.Token.Kind {
		case token.Indent:
			indents++
			depth++
			maxDepth = max(maxDepth, depth)
		case token.Dedent:
			dedents++
			depth--
		}
	}

	assert.Equal(t, 8, indents)
	assert.Equal(t, indents, dedents)
	assert.Equal(t, 4, maxDepth)
}

func TestModeTransitions(t *testing.T) {
	l := New("x.")
	_, _ = l.NextToken()
	assert.Equal(t, ModeNormal, l.Mode())
	_, _ = l.NextToken()
	assert.Equal(t, ModeDotID, l.Mode())
	assert.Equal(t, "DotId", l.Mode().String())
}

func TestParseRadixInt(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"0b101", 5},
		{"0o17", 15},
		{"0d99", 99},
		{"0h1F", 31},
		{"-0h1F", -31},
		{"-0h8000000000000000", -9223372036854775808},
	}
	for _, tt := range tests {
		got, err := ParseRadixInt(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	_, err := ParseRadixInt("0h8000000000000000")
	assert.ErrorIs(t, err, strconv.ErrRange)

	_, err = ParseRadixInt("0x12")
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}
