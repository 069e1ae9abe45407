package lexer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"firrtl/token"
)

// InvalidTokenError reports input that matches no token category, or a
// backtick escape that does not contain an integer.
type InvalidTokenError struct {
	Text   string
	Span   token.Span
	Pos    token.Position
	Escape bool
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *InvalidTokenError) Message() string {
	if e.Escape {
		return fmt.Sprintf("malformed escaped identifier: unexpected %q", e.Text)
	}
	return fmt.Sprintf("invalid token %q", e.Text)
}

// Position lets participle report the error location.
func (e *InvalidTokenError) Position() plexer.Position {
	return plexer.Position{Offset: e.Pos.Offset, Line: e.Pos.Line, Column: e.Pos.Column}
}

// InvalidIntegerError reports an integer literal whose digits do not parse
// under its base, typically because the value overflows int64.
type InvalidIntegerError struct {
	Text string
	Span token.Span
	Pos  token.Position
	Err  error
}

func (e *InvalidIntegerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *InvalidIntegerError) Message() string {
	return fmt.Sprintf("invalid integer literal %q: %v", e.Text, e.Err)
}

func (e *InvalidIntegerError) Unwrap() error {
	return e.Err
}

func (e *InvalidIntegerError) Position() plexer.Position {
	return plexer.Position{Offset: e.Pos.Offset, Line: e.Pos.Line, Column: e.Pos.Column}
}

// ParseRadixInt decodes a 0b/0o/0d/0h literal, with an optional leading
// minus sign, into an int64.
func ParseRadixInt(text string) (int64, error) {
	digits := text
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if len(digits) < 3 || digits[0] != '0' {
		return 0, &strconv.NumError{Func: "ParseRadixInt", Num: text, Err: strconv.ErrSyntax}
	}

	var base int
	switch digits[1] {
	case 'b':
		base = 2
	case 'o':
		base = 8
	case 'd':
		base = 10
	case 'h':
		base = 16
	default:
		return 0, &strconv.NumError{Func: "ParseRadixInt", Num: text, Err: strconv.ErrSyntax}
	}

	v, ok := new(big.Int).SetString(digits[2:], base)
	if !ok {
		return 0, &strconv.NumError{Func: "ParseRadixInt", Num: text, Err: strconv.ErrSyntax}
	}
	if neg {
		v.Neg(v)
	}
	if !v.IsInt64() {
		return 0, &strconv.NumError{Func: "ParseRadixInt", Num: text, Err: strconv.ErrRange}
	}
	return v.Int64(), nil
}
