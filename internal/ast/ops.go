package ast

import (
	"fmt"
	"slices"
	"strings"
)

// PrimOp2 is a primitive operation on two expressions.
type PrimOp2 int

const (
	OpAdd PrimOp2 = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpEq
	OpNeq
	OpDshl
	OpDshr
	OpAnd
	OpOr
	OpXor
	OpCat
)

var primOp2Names = []string{
	"add", "sub", "mul", "div", "rem", "lt", "leq", "gt", "geq",
	"eq", "neq", "dshl", "dshr", "and", "or", "xor", "cat",
}

// PrimOp1 is a primitive operation on one expression.
type PrimOp1 int

const (
	OpAsUInt PrimOp1 = iota
	OpAsSInt
	OpAsClock
	OpAsAsyncReset
	OpCvt
	OpNeg
	OpNot
	OpAndr
	OpOrr
	OpXorr
)

var primOp1Names = []string{
	"asUInt", "asSInt", "asClock", "asAsyncReset", "cvt",
	"neg", "not", "andr", "orr", "xorr",
}

// PrimOp1Int1 is a primitive operation on one expression and one integer
// parameter.
type PrimOp1Int1 int

const (
	OpPad PrimOp1Int1 = iota
	OpShl
	OpShr
	OpHead
	OpTail
)

var primOp1Int1Names = []string{"pad", "shl", "shr", "head", "tail"}

// PrimOp1Int2 is a primitive operation on one expression and two integer
// parameters.
type PrimOp1Int2 int

const (
	OpBits PrimOp1Int2 = iota
)

var primOp1Int2Names = []string{"bits"}

// UnknownOperatorError reports operator text outside the reserved
// vocabulary of its class.
type UnknownOperatorError struct {
	Class string
	Text  string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown %s operator %q", e.Class, e.Text)
}

// parseOp looks text up in names. A trailing "(" is ignored, since the
// lexer keeps it on parameterised operator tokens.
func parseOp[T ~int](class string, names []string, text string) (T, error) {
	i := slices.Index(names, strings.TrimSuffix(text, "("))
	if i < 0 {
		return 0, &UnknownOperatorError{Class: class, Text: text}
	}
	return T(i), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func opName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("op(%d)", i)
	}
	return names[i]
}

func ParsePrimOp2(text string) (PrimOp2, error) {
	return parseOp[PrimOp2]("binary", primOp2Names, text)
}

func ParsePrimOp1(text string) (PrimOp1, error) {
	return parseOp[PrimOp1]("unary", primOp1Names, text)
}

func ParsePrimOp1Int1(text string) (PrimOp1Int1, error) {
	return parseOp[PrimOp1Int1]("parameterised", primOp1Int1Names, text)
}

func ParsePrimOp1Int2(text string) (PrimOp1Int2, error) {
	return parseOp[PrimOp1Int2]("bit-range", primOp1Int2Names, text)
}

// MustParsePrimOp2 is ParsePrimOp2 for text the lexer has already
// classified as an E2Op. It panics on anything else.
func MustParsePrimOp2(text string) PrimOp2 { return must(ParsePrimOp2(text)) }

func MustParsePrimOp1(text string) PrimOp1 { return must(ParsePrimOp1(text)) }

func MustParsePrimOp1Int1(text string) PrimOp1Int1 { return must(ParsePrimOp1Int1(text)) }

func MustParsePrimOp1Int2(text string) PrimOp1Int2 { return must(ParsePrimOp1Int2(text)) }

func (op PrimOp2) String() string     { return opName(primOp2Names, int(op)) }
func (op PrimOp1) String() string     { return opName(primOp1Names, int(op)) }
func (op PrimOp1Int1) String() string { return opName(primOp1Int1Names, int(op)) }
func (op PrimOp1Int2) String() string { return opName(primOp1Int2Names, int(op)) }
