// Package lexer turns FIRRTL source text into the contextual token stream
// consumed by the grammar.
//
// A regex recognizer produces flat raw tokens. A mode state machine then
// consumes them through a small lookahead buffer, tracking indentation and
// bracket nesting, and emits at most one contextual token per step:
// Indent/Dedent for block structure, Info for "@[...]" annotations, ID for
// numbers used as names, and pass-through tokens for everything else.
//
// A Lexer is not safe for concurrent use. Create one per input.
package lexer

import (
	"io"
	"iter"
	"strings"

	"firrtl/token"
)

// TabWidth is the column multiple a tab advances to.
const TabWidth = 2

// Mode selects which handler interprets the next raw token.
type Mode int

const (
	ModeIndent Mode = iota
	ModeNormal
	ModeInfo
	ModeDotID
	ModeIntID
	ModeAnno
)

func (m Mode) String() string {
	switch m {
	case ModeIndent:
		return "Indent"
	case ModeNormal:
		return "Normal"
	case ModeInfo:
		return "Info"
	case ModeDotID:
		return "DotId"
	case ModeIntID:
		return "IntId"
	case ModeAnno:
		return "Anno"
	default:
		return "Mode(?)"
	}
}

// TokenString is a token together with where it came from. Slice is the
// source text covered by Span; for Info tokens it differs from Token.Text.
type TokenString struct {
	Token token.Token
	Span  token.Span
	Pos   token.Position
	Slice string

	err error // parse failure behind an Error token, if any
}

// Err returns the lexical error carried by an Error token, or nil.
func (ts TokenString) Err() error {
	if ts.Token.Kind != token.Error {
		return nil
	}
	if ts.err != nil {
		if _, ok := ts.err.(*InvalidTokenError); ok {
			return ts.err
		}
		return &InvalidIntegerError{Text: ts.Slice, Span: ts.Span, Pos: ts.Pos, Err: ts.err}
	}
	return &InvalidTokenError{Text: ts.Slice, Span: ts.Span, Pos: ts.Pos}
}

// Spanned is one item of the iterator contract: a token with its start and
// end byte offsets.
type Spanned struct {
	Start int
	Token token.Token
	End   int
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithDedentFlush makes the lexer emit one Dedent per open indentation
// level once the input is exhausted, so every Indent is matched.
func WithDedentFlush() Option {
	return func(l *Lexer) {
		l.flushDedents = true
	}
}

// WithFilename names the input in token positions and errors.
func WithFilename(name string) Option {
	return func(l *Lexer) {
		l.filename = name
	}
}

// Lexer turns FIRRTL source into contextual tokens. It tracks indentation
// and bracket nesting, so a token's kind can depend on what came before.
type Lexer struct {
	filename string
	source   string
	raw      *recognizer
	tokens   buffer

	mode         Mode
	indentLevels []int
	curIndent    int

	info      strings.Builder
	infoStart TokenString
	infoDepth int

	angle       int
	square      int
	bracket     int
	parenthesis int

	flushDedents bool
}

// New returns a lexer positioned at the start of source.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{
		source:       source,
		mode:         ModeIndent,
		indentLevels: []int{0},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.raw = newRecognizer(l.filename, source)
	return l
}

// Mode reports the current lexer mode.
func (l *Lexer) Mode() Mode {
	return l.mode
}

// Depth reports the size of the indentation stack; it starts at 1.
func (l *Lexer) Depth() int {
	return len(l.indentLevels)
}

func (l *Lexer) tryPush() {
	if ts, ok := l.raw.next(); ok {
		l.tokens.pushBack(ts)
	}
}

// NextToken runs mode handlers until one emits a token. It returns false
// once both the buffer and the input are exhausted. Error tokens are
// returned as data; callers should stop at the first one.
func (l *Lexer) NextToken() (TokenString, bool) {
	l.tryPush()

	for !l.tokens.empty() {
		var (
			ts TokenString
			ok bool
		)
		switch l.mode {
		case ModeIndent:
			ts, ok = l.indentMode()
		case ModeIntID:
			ts, ok = l.intIDMode()
		case ModeDotID:
			ts, ok = l.dotIDMode()
		case ModeInfo:
			ts, ok = l.infoMode()
		case ModeAnno:
			ts, ok = l.annoMode()
		default:
			ts, ok = l.normalMode()
		}
		if ok {
			return ts, true
		}
		l.tryPush()
	}

	if l.flushDedents && len(l.indentLevels) > 1 {
		l.indentLevels = l.indentLevels[:len(l.indentLevels)-1]
		end := len(l.source)
		return TokenString{
			Token: token.Token{Kind: token.Dedent},
			Span:  token.Span{Start: end, End: end},
			Pos:   l.endPos(),
		}, true
	}
	return TokenString{}, false
}

// Next implements the iterator contract: it returns io.EOF at the end of
// input, and an *InvalidTokenError or *InvalidIntegerError in place of a
// token when the input is malformed.
func (l *Lexer) Next() (Spanned, error) {
	ts, ok := l.NextToken()
	if !ok {
		return Spanned{}, io.EOF
	}
	if err := ts.Err(); err != nil {
		return Spanned{}, err
	}
	return Spanned{Start: ts.Span.Start, Token: ts.Token, End: ts.Span.End}, nil
}

// All iterates over the remaining tokens, stopping after the first error.
func (l *Lexer) All() iter.Seq2[Spanned, error] {
	return func(yield func(Spanned, error) bool) {
		for {
			s, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(s, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize lexes source to completion. Error tokens are included so
// callers can report every problem span.
func Tokenize(source string, opts ...Option) []TokenString {
	l := New(source, opts...)
	var out []TokenString
	for {
		ts, ok := l.NextToken()
		if !ok {
			return out
		}
		out = append(out, ts)
	}
}

func (l *Lexer) endPos() token.Position {
	pos := token.Position{Offset: len(l.source), Line: 1, Column: 1}
	if i := strings.LastIndexByte(l.source, '\n'); i >= 0 {
		pos.Line = strings.Count(l.source, "\n") + 1
		pos.Column = len(l.source) - i
	} else {
		pos.Column = len(l.source) + 1
	}
	return pos
}
