package grammar

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"firrtl/internal/ast"
	firlexer "firrtl/internal/lexer"
)

// ConversionError reports a grammar tree that parses but does not describe
// a valid AST, such as a width that does not fit in 32 bits. Err holds the
// *strconv.NumError when an integer value does not fit in 64 bits.
type ConversionError struct {
	Pos  lexer.Position
	Msg  string
	Text string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *ConversionError) Message() string {
	return e.Msg
}

func (e *ConversionError) Position() lexer.Position {
	return e.Pos
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Convert builds the AST for a parsed circuit. Reference chains are
// assembled left to right, so "a.b[0]" becomes RefIdxInt(RefDot(Ref(a), b), 0).
func Convert(tree *Circuit) (*ast.Circuit, error) {
	c := &converter{}
	circuit := c.circuit(tree)
	if c.err != nil {
		return nil, c.err
	}
	return circuit, nil
}

// converter keeps the first error and carries on, so each conversion
// step stays a plain function of its input.
type converter struct {
	err error
}

func (c *converter) fail(pos lexer.Position, format string, args ...any) {
	if c.err == nil {
		c.err = &ConversionError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}
}

func (c *converter) uint32(pos lexer.Position, text, what string) uint32 {
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		c.fail(pos, "%s %q is not an unsigned 32-bit integer", what, text)
	}
	return uint32(v)
}

func (c *converter) int64(pos lexer.Position, text, what string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return v
	}
	v, err = firlexer.ParseRadixInt(text)
	if err != nil && c.err == nil {
		c.err = &ConversionError{
			Pos:  pos,
			Msg:  fmt.Sprintf("%s %q is not a 64-bit integer", what, text),
			Text: text,
			Err:  err,
		}
	}
	return v
}

func (c *converter) width(pos lexer.Position, text *string) *ast.Width {
	if text == nil {
		return nil
	}
	return ast.NewWidth(c.uint32(pos, *text, "width"))
}

func info(text *string) ast.Info {
	if text == nil {
		return ""
	}
	return ast.Info(*text)
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func (c *converter) name(n *Name) ast.Identifier {
	switch {
	case n == nil:
		return nil
	case n.ID != nil:
		return ast.ID(c.uint32(n.Pos, *n.ID, "identifier"))
	default:
		return ast.Name(*n.Ident)
	}
}

func (c *converter) circuit(g *Circuit) *ast.Circuit {
	out := &ast.Circuit{
		Version: ast.Version{
			Major: c.uint32(g.Pos, g.Major, "major version"),
			Minor: c.uint32(g.Pos, g.Minor, "minor version"),
			Patch: c.uint32(g.Pos, g.Patch, "patch version"),
		},
		Name: c.name(g.Name),
		Info: info(g.Info),
	}
	for _, m := range g.Modules {
		if m.Module != nil {
			out.Modules = append(out.Modules, c.module(m.Module))
		} else {
			out.Modules = append(out.Modules, c.extModule(m.ExtModule))
		}
	}
	return out
}

func (c *converter) module(g *Module) *ast.Module {
	out := &ast.Module{
		Public: g.Public,
		Name:   c.name(g.Name),
		Info:   info(g.Info),
	}
	if g.Body != nil {
		out.Ports = c.ports(g.Body.Ports)
		out.Stmts = c.stmts(g.Body.Stmts)
	}
	return out
}

func (c *converter) extModule(g *ExtModule) *ast.ExtModule {
	out := &ast.ExtModule{
		Name: c.name(g.Name),
		Info: info(g.Info),
	}
	if g.Body == nil {
		return out
	}
	out.Ports = c.ports(g.Body.Ports)
	out.DefName = c.name(g.Body.DefName)
	for _, p := range g.Body.Params {
		name := c.name(p.Name)
		if p.Value.Int != nil {
			out.Params = append(out.Params, &ast.IntParam{Name: name, Value: c.int64(p.Pos, *p.Value.Int, "parameter")})
		} else {
			out.Params = append(out.Params, &ast.StringParam{Name: name, Value: unquote(*p.Value.Str)})
		}
	}
	return out
}

func (c *converter) ports(ports []*Port) []*ast.Port {
	out := make([]*ast.Port, 0, len(ports))
	for _, p := range ports {
		dir := ast.Input
		if p.Dir == "output" {
			dir = ast.Output
		}
		out = append(out, &ast.Port{
			Dir:  dir,
			Name: c.name(p.Name),
			Type: c.typ(p.Type),
			Info: info(p.Info),
		})
	}
	return out
}

func (c *converter) typ(g *Type) ast.Type {
	var out ast.Type
	if g.Base.Ground != nil {
		out = &ast.GroundType{Ground: c.ground(g.Pos, g.Base.Ground)}
	} else {
		bundle := &ast.BundleType{}
		for _, f := range g.Base.Bundle.Fields {
			bundle.Fields = append(bundle.Fields, &ast.Field{
				Flipped: f.Flip,
				Name:    c.name(f.Name),
				Type:    c.typ(f.Type),
			})
		}
		out = &ast.AggregateType{Aggregate: bundle}
	}

	for _, dim := range g.Dims {
		size, err := strconv.ParseInt(dim, 10, 64)
		if err != nil || size < 0 {
			c.fail(g.Pos, "vector size %q is not a non-negative integer", dim)
		}
		out = &ast.AggregateType{Aggregate: &ast.VectorType{Elem: out, Size: size}}
	}

	if g.Const {
		switch t := out.(type) {
		case *ast.GroundType:
			t.Const = true
		case *ast.AggregateType:
			t.Const = true
		}
	}
	return out
}

func (c *converter) ground(pos lexer.Position, g *GroundType) ast.Ground {
	switch g.Kind {
	case "Clock":
		return &ast.ClockType{}
	case "Reset":
		return &ast.ResetType{}
	case "AsyncReset":
		return &ast.AsyncResetType{}
	case "SInt":
		return &ast.SIntType{Width: c.width(pos, g.Width)}
	default:
		return &ast.UIntType{Width: c.width(pos, g.Width)}
	}
}

func (c *converter) stmts(stmts []*Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, c.stmt(s))
	}
	return out
}

func (c *converter) stmt(g *Stmt) ast.Stmt {
	switch {
	case g.Wire != nil:
		s := g.Wire
		return &ast.Wire{Name: c.name(s.Name), Type: c.typ(s.Type), Info: info(s.Info)}
	case g.Reg != nil:
		s := g.Reg
		return &ast.Reg{Name: c.name(s.Name), Type: c.typ(s.Type), Clock: c.expr(s.Clock), Info: info(s.Info)}
	case g.RegReset != nil:
		s := g.RegReset
		return &ast.RegReset{
			Name:  c.name(s.Name),
			Type:  c.typ(s.Type),
			Clock: c.expr(s.Clock),
			Reset: c.expr(s.Reset),
			Init:  c.expr(s.Init),
			Info:  info(s.Info),
		}
	case g.Inst != nil:
		s := g.Inst
		return &ast.Inst{Name: c.name(s.Name), Module: c.name(s.Module), Info: info(s.Info)}
	case g.Node != nil:
		s := g.Node
		return &ast.Node{Name: c.name(s.Name), Value: c.expr(s.Value), Info: info(s.Info)}
	case g.Connect != nil:
		s := g.Connect
		return &ast.Connect{Loc: c.expr(s.Loc), Value: c.expr(s.Value), Info: info(s.Info)}
	case g.Invalidate != nil:
		s := g.Invalidate
		return &ast.Invalidate{Target: c.expr(s.Target), Info: info(s.Info)}
	case g.When != nil:
		return c.when(g.When)
	case g.Printf != nil:
		s := g.Printf
		return &ast.Printf{
			Clock:  c.expr(s.Clock),
			Enable: c.expr(s.Enable),
			Format: unquote(s.Format),
			Args:   c.exprs(s.Args),
			Name:   c.name(s.Name),
			Info:   info(s.Info),
		}
	case g.Assert != nil:
		s := g.Assert
		return &ast.Assert{
			Clock:   c.expr(s.Clock),
			Pred:    c.expr(s.Pred),
			Enable:  c.expr(s.Enable),
			Message: unquote(s.Message),
			Name:    c.name(s.Name),
			Info:    info(s.Info),
		}
	case g.Stop != nil:
		s := g.Stop
		return &ast.Stop{
			Clock:  c.expr(s.Clock),
			Enable: c.expr(s.Enable),
			Code:   c.int64(g.Pos, s.Code, "exit code"),
			Name:   c.name(s.Name),
			Info:   info(s.Info),
		}
	case g.Skip != nil:
		return &ast.Skip{Info: info(g.Skip.Info)}
	case g.SMem != nil:
		s := g.SMem
		return &ast.SMem{
			Name:           c.name(s.Name),
			Type:           c.typ(s.Type),
			ReadUnderWrite: readUnderWrite(s.RUW),
			Info:           info(s.Info),
		}
	case g.CMem != nil:
		s := g.CMem
		return &ast.CMem{Name: c.name(s.Name), Type: c.typ(s.Type), Info: info(s.Info)}
	default:
		s := g.MPort
		return &ast.MPort{
			Dir:   mportDir(s.Dir),
			Name:  c.name(s.Name),
			Mem:   c.name(s.Mem),
			Index: c.expr(s.Index),
			Clock: c.expr(s.Clock),
			Info:  info(s.Info),
		}
	}
}

func (c *converter) when(g *When) *ast.When {
	out := &ast.When{
		Cond: c.expr(g.Cond),
		Info: info(g.Info),
		Then: c.stmts(g.Then),
	}
	if g.Else != nil {
		if g.Else.Branch.When != nil {
			out.Else = []ast.Stmt{c.when(g.Else.Branch.When)}
		} else {
			out.Else = c.stmts(g.Else.Branch.Block.Stmts)
		}
	}
	return out
}

func readUnderWrite(text *string) ast.ReadUnderWrite {
	if text == nil {
		return ast.RUWUnspecified
	}
	switch *text {
	case "old":
		return ast.RUWOld
	case "new":
		return ast.RUWNew
	default:
		return ast.RUWUndefined
	}
}

func mportDir(text string) ast.MPortDir {
	switch text {
	case "read":
		return ast.MPortRead
	case "write":
		return ast.MPortWrite
	case "rdwr":
		return ast.MPortReadWrite
	default:
		return ast.MPortInfer
	}
}

func (c *converter) exprs(exprs []*Expr) []ast.Expr {
	if len(exprs) == 0 {
		return nil
	}
	out := make([]ast.Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, c.expr(e))
	}
	return out
}

func (c *converter) expr(g *Expr) ast.Expr {
	switch {
	case g.Literal != nil:
		return c.literal(g.Pos, g.Literal)
	case g.Mux != nil:
		return &ast.Mux{Cond: c.expr(g.Mux.Cond), High: c.expr(g.Mux.High), Low: c.expr(g.Mux.Low)}
	case g.ValidIf != nil:
		return &ast.ValidIf{Cond: c.expr(g.ValidIf.Cond), Value: c.expr(g.ValidIf.Value)}
	case g.PrimOp2 != nil:
		p := g.PrimOp2
		return &ast.PrimOp2Expr{Op: ast.MustParsePrimOp2(p.Op), Lhs: c.expr(p.Lhs), Rhs: c.expr(p.Rhs)}
	case g.PrimOp1 != nil:
		p := g.PrimOp1
		return &ast.PrimOp1Expr{Op: ast.MustParsePrimOp1(p.Op), Arg: c.expr(p.Arg)}
	case g.PrimOp1I1 != nil:
		p := g.PrimOp1I1
		return &ast.PrimOp1Expr1Int{
			Op:    ast.MustParsePrimOp1Int1(p.Op),
			Arg:   c.expr(p.Arg),
			Param: c.uint32(g.Pos, p.Param, "operator parameter"),
		}
	case g.PrimOp1I2 != nil:
		p := g.PrimOp1I2
		return &ast.PrimOp1Expr2Int{
			Op:  ast.MustParsePrimOp1Int2(p.Op),
			Arg: c.expr(p.Arg),
			Hi:  c.uint32(g.Pos, p.Hi, "operator parameter"),
			Lo:  c.uint32(g.Pos, p.Lo, "operator parameter"),
		}
	default:
		return c.reference(g.Reference)
	}
}

func (c *converter) literal(pos lexer.Position, g *Literal) ast.Expr {
	width := c.width(pos, g.Width)
	signed := g.Kind == "SInt"

	if g.Value == nil {
		if signed {
			return &ast.SIntNoInit{Width: width}
		}
		return &ast.UIntNoInit{Width: width}
	}

	value := c.int64(pos, *g.Value, "literal")
	if signed {
		return &ast.SIntInit{Width: width, Value: value}
	}
	return &ast.UIntInit{Width: width, Value: value}
}

func (c *converter) reference(g *Reference) ast.Reference {
	var ref ast.Reference = &ast.Ref{Name: c.name(g.Root)}
	for _, s := range g.Suffixes {
		switch {
		case s.Field != nil:
			ref = &ast.RefDot{Parent: ref, Field: c.name(s.Field)}
		case s.Index.Int != nil:
			ref = &ast.RefIdxInt{Parent: ref, Index: c.uint32(s.Pos, *s.Index.Int, "index")}
		default:
			ref = &ast.RefIdxExpr{Parent: ref, Index: c.expr(s.Index.Expr)}
		}
	}
	return ref
}
