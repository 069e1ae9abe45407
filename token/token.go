// SPDX-License-Identifier: Apache-2.0

// Package token defines the FIRRTL token vocabulary shared by the lexer,
// the grammar and the language server.
package token

import "fmt"

type Kind int

const (
	Error Kind = iota

	// Structural tokens synthesized by the lexer
	Indent
	Dedent
	Info
	ID

	// Whitespace, consumed by the lexer
	Space
	Tab
	Newline
	Comment

	// Literals
	RadixInt
	IntegerDec
	Identifier
	String

	// Punctuation
	Slash
	LeftSquare
	RightSquare
	LeftAngle
	RightAngle
	LeftBracket
	RightBracket
	LeftParenthesis
	RightParenthesis
	AtSymbol
	Backtick
	Period
	AnnoStart
	AnnoEnd
	DoubleLeft
	DoubleRight
	Symbol // , : = %

	// Keywords
	Clock
	Reset
	AsyncReset
	UInt
	SInt
	ProbeType
	Probe
	Analog
	Fixed
	Flip
	Mux
	ValidIf
	SMem
	CMem
	Write
	Read
	Infer
	Mport
	DataType
	Depth
	ReadLatency
	WriteLatency
	ReadUnderWrite
	Reader
	Writer
	Readwriter
	Wire
	Reg
	RegReset
	Inst
	Of
	Node
	Invalidate
	Attach
	When
	Else
	Stop
	Printf
	Assert
	Skip
	Input
	Output
	Module
	ExtModule
	DefName
	Parameter
	IntModule
	Intrinsic
	FIRRTL
	Version
	Circuit
	Connect
	Public
	Define
	Const

	// Primitive operation names
	E2Op   // add(e, e)
	E1Op   // not(e)
	E1I1Op // pad(e, n), lexed together with its "("
	E1I2Op // bits(e, hi, lo), lexed together with its "("

	kindCount
)

var kindNames = [...]string{
	Error:      "Error",
	Indent:     "Indent",
	Dedent:     "Dedent",
	Info:       "Info",
	ID:         "ID",
	Space:      "Space",
	Tab:        "Tab",
	Newline:    "Newline",
	Comment:    "Comment",
	RadixInt:   "RadixInt",
	IntegerDec: "IntegerDec",
	Identifier: "Identifier",
	String:     "String",

	Slash:            "Slash",
	LeftSquare:       "LeftSquare",
	RightSquare:      "RightSquare",
	LeftAngle:        "LeftAngle",
	RightAngle:       "RightAngle",
	LeftBracket:      "LeftBracket",
	RightBracket:     "RightBracket",
	LeftParenthesis:  "LeftParenthesis",
	RightParenthesis: "RightParenthesis",
	AtSymbol:         "AtSymbol",
	Backtick:         "Backtick",
	Period:           "Period",
	AnnoStart:        "AnnoStart",
	AnnoEnd:          "AnnoEnd",
	DoubleLeft:       "DoubleLeft",
	DoubleRight:      "DoubleRight",
	Symbol:           "Symbol",

	Clock:          "Clock",
	Reset:          "Reset",
	AsyncReset:     "AsyncReset",
	UInt:           "UInt",
	SInt:           "SInt",
	ProbeType:      "ProbeType",
	Probe:          "Probe",
	Analog:         "Analog",
	Fixed:          "Fixed",
	Flip:           "Flip",
	Mux:            "Mux",
	ValidIf:        "ValidIf",
	SMem:           "SMem",
	CMem:           "CMem",
	Write:          "Write",
	Read:           "Read",
	Infer:          "Infer",
	Mport:          "Mport",
	DataType:       "DataType",
	Depth:          "Depth",
	ReadLatency:    "ReadLatency",
	WriteLatency:   "WriteLatency",
	ReadUnderWrite: "ReadUnderWrite",
	Reader:         "Reader",
	Writer:         "Writer",
	Readwriter:     "Readwriter",
	Wire:           "Wire",
	Reg:            "Reg",
	RegReset:       "RegReset",
	Inst:           "Inst",
	Of:             "Of",
	Node:           "Node",
	Invalidate:     "Invalidate",
	Attach:         "Attach",
	When:           "When",
	Else:           "Else",
	Stop:           "Stop",
	Printf:         "Printf",
	Assert:         "Assert",
	Skip:           "Skip",
	Input:          "Input",
	Output:         "Output",
	Module:         "Module",
	ExtModule:      "ExtModule",
	DefName:        "DefName",
	Parameter:      "Parameter",
	IntModule:      "IntModule",
	Intrinsic:      "Intrinsic",
	FIRRTL:         "FIRRTL",
	Version:        "Version",
	Circuit:        "Circuit",
	Connect:        "Connect",
	Public:         "Public",
	Define:         "Define",
	Const:          "Const",

	E2Op:   "E2Op",
	E1Op:   "E1Op",
	E1I1Op: "E1I1Op",
	E1I2Op: "E1I2Op",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Error; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Clock && k <= Const
}

// IsOperator reports whether k names a primitive operation.
func (k Kind) IsOperator() bool {
	return k >= E2Op && k <= E1I2Op
}

// IsWhitespace reports whether k is consumed by the lexer before reaching
// the grammar.
func (k Kind) IsWhitespace() bool {
	return k == Space || k == Tab || k == Newline || k == Comment
}

// Token is a classified lexeme. Text holds the source slice, except for
// Info where it holds the accumulated annotation text. Value holds the
// parsed number of ID and IntegerDec tokens.
type Token struct {
	Kind  Kind
	Text  string
	Value int64
}

func (t Token) String() string {
	switch t.Kind {
	case ID, IntegerDec:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
	case Indent, Dedent, Space, Tab, Newline:
		return t.Kind.String()
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
}

// Span is a half-open byte range into the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

type Position struct {
	Offset int // 0-based byte offset
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
