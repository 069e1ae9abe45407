package ast

type Stmt interface {
	String() string
	StmtInfo() Info
	isStmt()
}

type Wire struct {
	Name Identifier
	Type Type
	Info Info
}

type Reg struct {
	Name  Identifier
	Type  Type
	Clock Expr
	Info  Info
}

type RegReset struct {
	Name  Identifier
	Type  Type
	Clock Expr
	Reset Expr
	Init  Expr
	Info  Info
}

// Inst instantiates Module under Name.
type Inst struct {
	Name   Identifier
	Module Identifier
	Info   Info
}

// Node binds Name to the value of an expression.
type Node struct {
	Name  Identifier
	Value Expr
	Info  Info
}

type Connect struct {
	Loc   Expr
	Value Expr
	Info  Info
}

type Invalidate struct {
	Target Expr
	Info   Info
}

// When is a conditional block. A nil Else means there is no else branch.
type When struct {
	Cond Expr
	Info Info
	Then []Stmt
	Else []Stmt
}

// Printf holds Format as written between the quotes, escapes intact.
// Name is nil when the statement is unlabelled.
type Printf struct {
	Clock  Expr
	Enable Expr
	Format string
	Args   []Expr
	Name   Identifier
	Info   Info
}

type Assert struct {
	Clock   Expr
	Pred    Expr
	Enable  Expr
	Message string
	Name    Identifier
	Info    Info
}

type Stop struct {
	Clock  Expr
	Enable Expr
	Code   int64
	Name   Identifier
	Info   Info
}

type Skip struct {
	Info Info
}

// SMem declares a synchronous-read memory. The outermost vector dimension
// of Type is the depth.
type SMem struct {
	Name           Identifier
	Type           Type
	ReadUnderWrite ReadUnderWrite
	Info           Info
}

// CMem declares a combinational-read memory.
type CMem struct {
	Name Identifier
	Type Type
	Info Info
}

// MPort declares a port on an smem or cmem, accessed at Index.
type MPort struct {
	Dir   MPortDir
	Name  Identifier
	Mem   Identifier
	Index Expr
	Clock Expr
	Info  Info
}

func (*Wire) isStmt()       {}
func (*Reg) isStmt()        {}
func (*RegReset) isStmt()   {}
func (*Inst) isStmt()       {}
func (*Node) isStmt()       {}
func (*Connect) isStmt()    {}
func (*Invalidate) isStmt() {}
func (*When) isStmt()       {}
func (*Printf) isStmt()     {}
func (*Assert) isStmt()     {}
func (*Stop) isStmt()       {}
func (*Skip) isStmt()       {}
func (*SMem) isStmt()       {}
func (*CMem) isStmt()       {}
func (*MPort) isStmt()      {}

func (s *Wire) StmtInfo() Info       { return s.Info }
func (s *Reg) StmtInfo() Info        { return s.Info }
func (s *RegReset) StmtInfo() Info   { return s.Info }
func (s *Inst) StmtInfo() Info       { return s.Info }
func (s *Node) StmtInfo() Info       { return s.Info }
func (s *Connect) StmtInfo() Info    { return s.Info }
func (s *Invalidate) StmtInfo() Info { return s.Info }
func (s *When) StmtInfo() Info       { return s.Info }
func (s *Printf) StmtInfo() Info     { return s.Info }
func (s *Assert) StmtInfo() Info     { return s.Info }
func (s *Stop) StmtInfo() Info       { return s.Info }
func (s *Skip) StmtInfo() Info       { return s.Info }
func (s *SMem) StmtInfo() Info       { return s.Info }
func (s *CMem) StmtInfo() Info       { return s.Info }
func (s *MPort) StmtInfo() Info      { return s.Info }

type ReadUnderWrite int

const (
	RUWUnspecified ReadUnderWrite = iota
	RUWOld
	RUWNew
	RUWUndefined
)

func (r ReadUnderWrite) String() string {
	switch r {
	case RUWOld:
		return "old"
	case RUWNew:
		return "new"
	case RUWUndefined:
		return "undefined"
	default:
		return ""
	}
}

type MPortDir int

const (
	MPortInfer MPortDir = iota
	MPortRead
	MPortWrite
	MPortReadWrite
)

func (d MPortDir) String() string {
	switch d {
	case MPortRead:
		return "read"
	case MPortWrite:
		return "write"
	case MPortReadWrite:
		return "rdwr"
	default:
		return "infer"
	}
}
