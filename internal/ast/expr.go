package ast

// Info is the provenance text of an "@[...]" annotation, without the
// delimiters. The empty string means no annotation was given.
type Info string

// Width is the bit width of a ground type or literal.
type Width uint32

// NewWidth returns a pointer to w, for optional width fields.
func NewWidth(w uint32) *Width {
	v := Width(w)
	return &v
}

// Identifier is either a numeric identifier (ID) or a textual one (Name).
type Identifier interface {
	String() string
	isIdentifier()
}

// ID is a numeric identifier such as the "0" in "io.0" or "{ 0 : UInt }".
type ID uint32

// Name is an ordinary textual identifier.
type Name string

func (ID) isIdentifier()   {}
func (Name) isIdentifier() {}

type Expr interface {
	String() string
	isExpr()
}

// Reference is a path expression rooted at a named declaration.
type Reference interface {
	Expr
	isReference()
}

type Ref struct {
	Name Identifier
}

type RefDot struct {
	Parent Reference
	Field  Identifier
}

type RefIdxInt struct {
	Parent Reference
	Index  uint32
}

// RefIdxExpr is a dynamic sub-access such as "mem[io.addr]".
type RefIdxExpr struct {
	Parent Reference
	Index  Expr
}

type UIntNoInit struct {
	Width *Width
}

type UIntInit struct {
	Width *Width
	Value int64
}

type SIntNoInit struct {
	Width *Width
}

type SIntInit struct {
	Width *Width
	Value int64
}

type Mux struct {
	Cond Expr
	High Expr
	Low  Expr
}

type ValidIf struct {
	Cond  Expr
	Value Expr
}

type PrimOp2Expr struct {
	Op  PrimOp2
	Lhs Expr
	Rhs Expr
}

type PrimOp1Expr struct {
	Op  PrimOp1
	Arg Expr
}

type PrimOp1Expr1Int struct {
	Op    PrimOp1Int1
	Arg   Expr
	Param uint32
}

type PrimOp1Expr2Int struct {
	Op  PrimOp1Int2
	Arg Expr
	Hi  uint32
	Lo  uint32
}

func (*Ref) isExpr()             {}
func (*RefDot) isExpr()          {}
func (*RefIdxInt) isExpr()       {}
func (*RefIdxExpr) isExpr()      {}
func (*UIntNoInit) isExpr()      {}
func (*UIntInit) isExpr()        {}
func (*SIntNoInit) isExpr()      {}
func (*SIntInit) isExpr()        {}
func (*Mux) isExpr()             {}
func (*ValidIf) isExpr()         {}
func (*PrimOp2Expr) isExpr()     {}
func (*PrimOp1Expr) isExpr()     {}
func (*PrimOp1Expr1Int) isExpr() {}
func (*PrimOp1Expr2Int) isExpr() {}

func (*Ref) isReference()        {}
func (*RefDot) isReference()     {}
func (*RefIdxInt) isReference()  {}
func (*RefIdxExpr) isReference() {}

// Root returns the identifier a reference chain starts from.
func Root(r Reference) Identifier {
	for {
		switch v := r.(type) {
		case *Ref:
			return v.Name
		case *RefDot:
			r = v.Parent
		case *RefIdxInt:
			r = v.Parent
		case *RefIdxExpr:
			r = v.Parent
		default:
			return nil
		}
	}
}
