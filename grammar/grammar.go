package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar runs over the contextual token stream: block structure
// arrives as Indent/Dedent tokens and "@[...]" annotations as single Info
// tokens. Integer captures are kept as strings and converted by Convert.

type Circuit struct {
	Pos lexer.Position

	Major   string           `"FIRRTL" "version" @IntegerDec`
	Minor   string           `"." @ID`
	Patch   string           `"." @ID`
	Name    *Name            `"circuit" @@ ":"`
	Info    *string          `@Info?`
	Modules []*CircuitModule `Indent @@+ Dedent`
}

// Name is an identifier. Some keywords only matter in statement-leading
// position and are accepted as names everywhere else.
type Name struct {
	Pos lexer.Position

	ID    *string `  @ID`
	Ident *string `| @(Identifier | "depth" | "reader" | "writer" | "readwriter" | "read" | "write" | "infer" | "of" | "define" | "attach" | "probe" | "intrinsic" | "version" | "public")`
}

type CircuitModule struct {
	Module    *Module    `  @@`
	ExtModule *ExtModule `| @@`
}

type Module struct {
	Pos lexer.Position

	Public bool        `@"public"?`
	Name   *Name       `"module" @@ ":"`
	Info   *string     `@Info?`
	Body   *ModuleBody `@@?`
}

type ModuleBody struct {
	Ports []*Port `Indent @@*`
	Stmts []*Stmt `@@* Dedent`
}

type ExtModule struct {
	Pos lexer.Position

	Name *Name          `"extmodule" @@ ":"`
	Info *string        `@Info?`
	Body *ExtModuleBody `@@?`
}

type ExtModuleBody struct {
	Ports   []*Port      `Indent @@*`
	DefName *Name        `( "defname" "=" @@ )?`
	Params  []*Parameter `@@* Dedent`
}

type Parameter struct {
	Pos lexer.Position

	Name  *Name       `"parameter" @@ "="`
	Value *ParamValue `@@`
}

type ParamValue struct {
	Int *string `  @IntegerDec`
	Str *string `| @String`
}

type Port struct {
	Pos lexer.Position

	Dir  string  `@("input" | "output")`
	Name *Name   `@@ ":"`
	Type *Type   `@@`
	Info *string `@Info?`
}

type Type struct {
	Pos lexer.Position

	Const bool      `@"const"?`
	Base  *BaseType `@@`
	Dims  []string  `( "[" @IntegerDec "]" )*`
}

type BaseType struct {
	Ground *GroundType `  @@`
	Bundle *Bundle     `| @@`
}

type GroundType struct {
	Kind  string  `@("Clock" | "Reset" | "AsyncReset" | "UInt" | "SInt")`
	Width *string `( "<" @IntegerDec ">" )?`
}

type Bundle struct {
	Fields []*Field `"{" ( @@ ( "," @@ )* )? "}"`
}

type Field struct {
	Flip bool  `@"flip"?`
	Name *Name `@@ ":"`
	Type *Type `@@`
}

type Stmt struct {
	Pos lexer.Position

	Wire       *Wire       `  @@`
	Reg        *Reg        `| @@`
	RegReset   *RegReset   `| @@`
	Inst       *Inst       `| @@`
	Node       *Node       `| @@`
	Connect    *Connect    `| @@`
	Invalidate *Invalidate `| @@`
	When       *When       `| @@`
	Printf     *Printf     `| @@`
	Assert     *Assert     `| @@`
	Stop       *Stop       `| @@`
	Skip       *Skip       `| @@`
	SMem       *SMem       `| @@`
	CMem       *CMem       `| @@`
	MPort      *MPort      `| @@`
}

type Wire struct {
	Name *Name   `"wire" @@ ":"`
	Type *Type   `@@`
	Info *string `@Info?`
}

type Reg struct {
	Name  *Name   `"reg" @@ ":"`
	Type  *Type   `@@ ","`
	Clock *Expr   `@@`
	Info  *string `@Info?`
}

type RegReset struct {
	Name  *Name   `"regreset" @@ ":"`
	Type  *Type   `@@ ","`
	Clock *Expr   `@@ ","`
	Reset *Expr   `@@ ","`
	Init  *Expr   `@@`
	Info  *string `@Info?`
}

type Inst struct {
	Name   *Name   `"inst" @@`
	Module *Name   `"of" @@`
	Info   *string `@Info?`
}

type Node struct {
	Name  *Name   `"node" @@ "="`
	Value *Expr   `@@`
	Info  *string `@Info?`
}

type Connect struct {
	Loc   *Expr   `"connect" @@ ","`
	Value *Expr   `@@`
	Info  *string `@Info?`
}

type Invalidate struct {
	Target *Expr   `"invalidate" @@`
	Info   *string `@Info?`
}

type When struct {
	Cond *Expr   `"when" @@ ":"`
	Info *string `@Info?`
	Then []*Stmt `Indent @@+ Dedent`
	Else *Else   `@@?`
}

type Else struct {
	Pos lexer.Position

	Branch *ElseBranch `"else" @@`
}

type ElseBranch struct {
	When  *When      `  @@`
	Block *ElseBlock `| @@`
}

type ElseBlock struct {
	Info  *string `":" @Info?`
	Stmts []*Stmt `Indent @@+ Dedent`
}

type Printf struct {
	Clock  *Expr   `"printf" "(" @@ ","`
	Enable *Expr   `@@ ","`
	Format string  `@String`
	Args   []*Expr `( "," @@ )* ")"`
	Name   *Name   `( ":" @@ )?`
	Info   *string `@Info?`
}

type Assert struct {
	Clock   *Expr   `"assert" "(" @@ ","`
	Pred    *Expr   `@@ ","`
	Enable  *Expr   `@@ ","`
	Message string  `@String ")"`
	Name    *Name   `( ":" @@ )?`
	Info    *string `@Info?`
}

type Stop struct {
	Clock  *Expr   `"stop" "(" @@ ","`
	Enable *Expr   `@@ ","`
	Code   string  `@IntegerDec ")"`
	Name   *Name   `( ":" @@ )?`
	Info   *string `@Info?`
}

type Skip struct {
	Keyword string  `@"skip"`
	Info    *string `@Info?`
}

type SMem struct {
	Name *Name   `"smem" @@ ":"`
	Type *Type   `@@`
	RUW  *string `( "," @("old" | "new" | "undefined") )?`
	Info *string `@Info?`
}

type CMem struct {
	Name *Name   `"cmem" @@ ":"`
	Type *Type   `@@`
	Info *string `@Info?`
}

type MPort struct {
	Dir   string  `@("read" | "write" | "infer" | "rdwr")`
	Name  *Name   `"mport" @@ "="`
	Mem   *Name   `@@`
	Index *Expr   `"[" @@ "]" ","`
	Clock *Expr   `@@`
	Info  *string `@Info?`
}

type Expr struct {
	Pos lexer.Position

	Literal   *Literal   `  @@`
	Mux       *MuxExpr   `| @@`
	ValidIf   *ValidIf   `| @@`
	PrimOp2   *PrimOp2   `| @@`
	PrimOp1   *PrimOp1   `| @@`
	PrimOp1I1 *PrimOp1I1 `| @@`
	PrimOp1I2 *PrimOp1I2 `| @@`
	Reference *Reference `| @@`
}

type Literal struct {
	Kind  string  `@("UInt" | "SInt")`
	Width *string `( "<" @IntegerDec ">" )?`
	Value *string `( "(" @(IntegerDec | RadixInt) ")" )?`
}

type MuxExpr struct {
	Cond *Expr `"mux" "(" @@ ","`
	High *Expr `@@ ","`
	Low  *Expr `@@ ")"`
}

type ValidIf struct {
	Cond  *Expr `"validif" "(" @@ ","`
	Value *Expr `@@ ")"`
}

type PrimOp2 struct {
	Op  string `@E2Op "("`
	Lhs *Expr  `@@ ","`
	Rhs *Expr  `@@ ")"`
}

type PrimOp1 struct {
	Op  string `@E1Op "("`
	Arg *Expr  `@@ ")"`
}

// PrimOp1I1 and PrimOp1I2 operator tokens already include their "(".
type PrimOp1I1 struct {
	Op    string `@E1I1Op`
	Arg   *Expr  `@@ ","`
	Param string `@IntegerDec ")"`
}

type PrimOp1I2 struct {
	Op  string `@E1I2Op`
	Arg *Expr  `@@ ","`
	Hi  string `@IntegerDec ","`
	Lo  string `@IntegerDec ")"`
}

type Reference struct {
	Pos lexer.Position

	Root     *Name        `@@`
	Suffixes []*RefSuffix `@@*`
}

type RefSuffix struct {
	Pos lexer.Position

	Field *Name     `  "." @@`
	Index *RefIndex `| "[" @@ "]"`
}

type RefIndex struct {
	Int  *string `  @IntegerDec`
	Expr *Expr   `| @@`
}
