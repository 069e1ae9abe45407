package lexer

import (
	"strings"

	"firrtl/token"
)

// Each handler pops exactly one token from the buffer and returns the
// token to emit, if any.

func (l *Lexer) indentMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.Space:
		l.curIndent++
	case token.Tab:
		l.curIndent = (l.curIndent + TabWidth) &^ (TabWidth - 1)
	case token.Newline:
		l.curIndent = 0
	case token.Comment:
		// a comment-only line counts as blank
	default:
		l.tokens.pushFront(ts)

		lvl := l.indentLevels[len(l.indentLevels)-1]
		switch {
		case l.curIndent > lvl:
			l.mode = ModeNormal
			l.indentLevels = append(l.indentLevels, l.curIndent)
			return structural(token.Indent, ts), true
		case l.curIndent < lvl:
			// One level per call; the pending token stays queued so a
			// multi-level dedent re-enters here.
			l.indentLevels = l.indentLevels[:len(l.indentLevels)-1]
			return structural(token.Dedent, ts), true
		default:
			l.mode = ModeNormal
		}
	}
	return TokenString{}, false
}

func (l *Lexer) normalMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.Newline:
		l.curIndent = 0
		l.mode = ModeIndent
		return TokenString{}, false
	case token.Space, token.Tab, token.Comment:
		return TokenString{}, false
	case token.IntegerDec:
		if l.angle == 0 && l.square == 0 && l.parenthesis == 0 && l.bracket != 0 {
			return asID(ts), true
		}
	case token.AtSymbol:
		l.mode = ModeInfo
		l.infoStart = ts
		l.infoDepth = 0
		l.info.Reset()
		return TokenString{}, false
	case token.LeftAngle:
		l.angle++
	case token.RightAngle:
		l.angle = decrement(l.angle)
	case token.LeftSquare:
		l.square++
	case token.RightSquare:
		l.square = decrement(l.square)
	case token.LeftBracket:
		l.bracket++
	case token.RightBracket:
		l.bracket = decrement(l.bracket)
	case token.LeftParenthesis:
		l.parenthesis++
	case token.RightParenthesis:
		l.parenthesis = decrement(l.parenthesis)
	case token.E1I1Op, token.E1I2Op:
		// the "(" is part of the lexeme
		l.parenthesis++
	case token.Backtick:
		l.mode = ModeIntID
		return TokenString{}, false
	case token.Period:
		l.mode = ModeDotID
	case token.AnnoStart:
		l.mode = ModeAnno
		return TokenString{}, false
	case token.AnnoEnd:
		// "]]" outside an annotation closes two index brackets.
		l.split(ts, token.RightSquare)
		return TokenString{}, false
	case token.DoubleRight:
		if l.angle > 0 {
			l.split(ts, token.RightAngle)
			return TokenString{}, false
		}
	}
	return ts, true
}

func (l *Lexer) infoMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.LeftSquare:
		if l.infoDepth > 0 {
			l.info.WriteString(ts.Slice)
		} else {
			l.info.Reset()
		}
		l.infoDepth++
	case token.RightSquare:
		l.infoDepth--
		if l.infoDepth > 0 {
			l.info.WriteString(ts.Slice)
			return TokenString{}, false
		}
		l.mode = ModeNormal
		return TokenString{
			Token: token.Token{Kind: token.Info, Text: l.info.String()},
			Span:  token.Span{Start: l.infoStart.Span.Start, End: ts.Span.End},
			Pos:   l.infoStart.Pos,
			Slice: l.source[l.infoStart.Span.Start:ts.Span.End],
		}, true
	case token.AnnoEnd:
		l.split(ts, token.RightSquare)
	case token.Comment:
		// ";" is plain text here; a "]" inside the run still closes.
		i := strings.IndexByte(ts.Slice, ']')
		if i < 0 {
			l.info.WriteString(ts.Slice)
			break
		}
		l.info.WriteString(ts.Slice[:i])
		l.requeue(relex(ts, i))
	default:
		l.info.WriteString(ts.Slice)
	}
	return TokenString{}, false
}

func (l *Lexer) dotIDMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.IntegerDec:
		return asID(ts), true
	case token.Backtick:
		l.mode = ModeIntID
		return TokenString{}, false
	default:
		l.mode = ModeNormal
		l.tokens.pushFront(ts)
		return TokenString{}, false
	}
}

func (l *Lexer) intIDMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.IntegerDec:
		return asID(ts), true
	case token.Backtick:
		l.mode = ModeNormal
		return TokenString{}, false
	default:
		bad := ts
		bad.Token = token.Token{Kind: token.Error, Text: ts.Slice}
		bad.err = &InvalidTokenError{Text: ts.Slice, Span: ts.Span, Pos: ts.Pos, Escape: true}
		return bad, true
	}
}

func (l *Lexer) annoMode() (TokenString, bool) {
	ts := l.tokens.popFront()
	switch ts.Token.Kind {
	case token.AnnoEnd:
		l.mode = ModeNormal
	case token.Comment:
		if i := strings.Index(ts.Slice, "]]"); i >= 0 {
			l.requeue(relex(ts, i))
		}
	}
	return TokenString{}, false
}

// split replaces a two-character token with two single-character tokens of
// kind k at the front of the buffer.
func (l *Lexer) split(ts TokenString, k token.Kind) {
	first, second := ts, ts
	first.Token = token.Token{Kind: k, Text: ts.Slice[:1]}
	first.Span.End = ts.Span.Start + 1
	first.Slice = ts.Slice[:1]
	second.Token = token.Token{Kind: k, Text: ts.Slice[1:]}
	second.Span.Start = ts.Span.Start + 1
	second.Pos.Offset++
	second.Pos.Column++
	second.Slice = ts.Slice[1:]
	l.tokens.pushFront(second)
	l.tokens.pushFront(first)
}

// requeue puts tokens back at the front of the buffer in order.
func (l *Lexer) requeue(tokens []TokenString) {
	for i := len(tokens) - 1; i >= 0; i-- {
		l.tokens.pushFront(tokens[i])
	}
}

func structural(k token.Kind, at TokenString) TokenString {
	return TokenString{
		Token: token.Token{Kind: k},
		Span:  token.Span{Start: at.Span.Start, End: at.Span.Start},
		Pos:   at.Pos,
	}
}

func asID(ts TokenString) TokenString {
	ts.Token.Kind = token.ID
	return ts
}

func decrement(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
